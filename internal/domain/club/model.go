package club

import "fmt"

// Club is a real-world football club. It is reference data and never mutated here.
type Club struct {
	ID        string
	Name      string
	ShortName string
	LogoURL   string
	JerseyURL string
}

func (c Club) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("club id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("club name is required")
	}

	return nil
}
