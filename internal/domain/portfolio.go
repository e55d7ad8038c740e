package domain

// Project is a portfolio project entry.
type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
	Link        string   `json:"link"`
	GitHub      string   `json:"github"`
}

// Skill is a portfolio skill entry with a 1-100 proficiency level.
type Skill struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Level    int    `json:"level"`
	Icon     string `json:"icon"`
}

// Certification is a portfolio certification entry.
type Certification struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Issuer        string `json:"issuer"`
	IssueDate     string `json:"issueDate"`
	CredentialURL string `json:"credentialUrl"`
	Image         string `json:"image"`
}
