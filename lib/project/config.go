package project

import (
	"os"
	"path"

	"github.com/espresso-lang/espresso/util"
	"gopkg.in/yaml.v3"
)

// ConfFile is the per-project configuration file name.
const ConfFile = "espresso.yaml"

type Conf struct {
	Name         string       `yaml:"name"`
	Description  string       `yaml:"description"`
	Version      string       `yaml:"version"`
	Main         string       `yaml:"main"`
	Outputs      Outputs      `yaml:"outputs"`
	Dependencies []Dependency `yaml:"dependencies"`
	Author       string       `yaml:"author"`
	License      string       `yaml:"license"`
}

// Outputs names the files the three run sinks are written to when the
// project is run through its config. Empty entries fall back to the CLI
// defaults (stdout, discarded trees, stderr).
type Outputs struct {
	Runtime string `yaml:"runtime"`
	Tree    string `yaml:"tree"`
	Errors  string `yaml:"errors"`
}

type Dependency struct {
	Package    string `yaml:"package"`
	Version    string `yaml:"version"`
	Identifier string `yaml:"identifier"`
}

func (c *Conf) CreateDefault(name string) {
	if name == "" || name == "." {
		name = "NewProject"
	}
	c.Name = name
	c.Description = "A new Espresso project"
	c.Version = "1.0.0"
	c.Main = "src/main.esp"
	c.Outputs = Outputs{
		Runtime: "out.txt",
		Tree:    "tree.txt",
		Errors:  "outError.txt",
	}
	c.Author = "Anonymous"
	c.License = "MIT"
}

func (c *Conf) Save(filepath string, overwrite bool) error {
	if _, err := os.Stat(filepath); !os.IsNotExist(err) {
		if !overwrite && !util.PromptYN(filepath+" already exists. Overwrite?", false) {
			return nil
		}
	}

	yml, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath, yml, 0644)
}

func Load(dir string) (Conf, error) {
	var conf Conf

	file, err := os.Open(path.Join(dir, ConfFile))
	if err != nil {
		return Conf{}, err
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&conf); err != nil {
		return Conf{}, err
	}

	return conf, nil
}
