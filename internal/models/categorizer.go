package models

// CategoryConfig is one entry of a keyword table.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// CategoriesConfig is the YAML shape of a keyword table file.
type CategoriesConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
}
