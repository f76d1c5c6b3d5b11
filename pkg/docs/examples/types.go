package examples

// ExampleData contains all the data needed to generate a request example
type ExampleData struct {
	Language     string
	Key          string
	Description  string
	Method       string
	URL          string
	RequiresAuth bool
	HasBody      bool
	Install      PackageManagerInfo
}

// PackageManagerInfo contains package manager specific information
type PackageManagerInfo struct {
	Command        string // e.g. "pip install", "npm install"
	PackageName    string
	InstallExample string
}

// Snippet is one rendered example
type Snippet struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}
