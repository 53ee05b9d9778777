package domain

// Template is a solution template available to the current user.
type Template struct {
	ID      string `json:"psdevslntemplid" yaml:"id"`
	Name    string `json:"psdevslntemplname" yaml:"name"`
	RepoURL string `json:"coderepourl,omitempty" yaml:"repo_url,omitempty"`
}
