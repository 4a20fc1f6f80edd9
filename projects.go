package main

import (
	"encoding/gob"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/urfave/cli/v2"

	"github.com/espresso-lang/espresso/lib/project"
	"github.com/espresso-lang/espresso/util"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:     "init",
		Usage:    "Initialize a new Espresso project",
		Category: "project",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "The name of the project",
			},
		},
		Action: initProject,
	}, &cli.Command{
		Name:    "install",
		Aliases: []string{"i"},
		Usage:   "Installs a package and adds it to the project",
		Description: "Clones a package of Espresso sources from a remote git repository to the package cache." +
			"\nIf the package is already in the cache, it only adds a reference to it to the project's config file." +
			"\n\nIf the command is run without the url argument, it installs all packages for the current project.",
		Category:  "project",
		ArgsUsage: "<url>",
		Action:    install,
	}, &cli.Command{
		Name:     "library",
		Aliases:  []string{"lib"},
		Usage:    "Displays information about an installed package",
		Category: "project",
		Action:   libInfo,
	})
}

const sampleProgram = `int x = 42;
print(x);
if (x > 10):
    print(x * 2);
else:
    print(0);
end
`

func initProject(c *cli.Context) error {
	rootDir := c.Args().First()
	if rootDir == "" {
		rootDir = "."
	}

	if _, err := os.Stat(rootDir); !os.IsNotExist(err) {
		files, err := os.ReadDir(rootDir)
		if err != nil {
			return err
		}
		if len(files) > 0 && !util.PromptYN("The directory is not empty, continue?", false) {
			return nil
		}
	} else {
		if err := os.Mkdir(rootDir, 0755); err != nil {
			return err
		}
		fmt.Println("Created directory:", rootDir)
	}

	srcDir := path.Join(rootDir, "src")
	if _, err := os.Stat(srcDir); os.IsNotExist(err) {
		if err := os.Mkdir(srcDir, 0755); err != nil {
			return err
		}
		fmt.Println("Created directory:", srcDir)
	}

	mainFile := path.Join(srcDir, "main.esp")
	if _, err := os.Stat(mainFile); os.IsNotExist(err) {
		if err := os.WriteFile(mainFile, []byte(sampleProgram), 0644); err != nil {
			return err
		}
		fmt.Println("Created file:", mainFile)
	}

	conf := project.Conf{}
	name := c.String("name")
	if name == "" {
		name = filepath.Base(rootDir)
	}
	if util.PromptYN("Use default configuration?", true) {
		conf.CreateDefault(name)
	} else {
		conf.CreateDefault(name)
		conf.Name = util.PromptString("Project name", conf.Name)
		conf.Description = util.PromptString("Project description", conf.Description)
		conf.Version = util.PromptString("Project version", conf.Version)
		conf.Main = util.PromptString("Main file", conf.Main)
		conf.Author = util.PromptString("Author", conf.Author)
		conf.License = util.PromptString("License", conf.License)
	}

	if err := conf.Save(path.Join(rootDir, project.ConfFile), false); err != nil {
		return err
	}
	fmt.Println("Created file:", path.Join(rootDir, project.ConfFile))

	fmt.Println("----------------------------------------")
	fmt.Println("Project initialized successfully!")
	fmt.Println("Run 'cd", rootDir, "&& espresso run' to run the project.")
	fmt.Println("----------------------------------------")

	return nil
}

func install(c *cli.Context) error {
	liburl := c.Args().First()
	conf, err := project.Load(".")
	if err != nil {
		return err
	}

	cache := PackageCache{}
	if err := cache.Init(); err != nil {
		return err
	}
	if err := cache.CacheScan(true); err != nil {
		return err
	}

	if liburl == "" {
		for _, dep := range conf.Dependencies {
			pkg, err := cache.GetPackage(dep.Package, dep.Version, dep.Identifier)
			if err != nil {
				return err
			}
			if pkg == (Package{}) {
				color.Green("Package %s not found locally, cloning...", dep.Package)
				if _, _, _, err := InstallLibrary(&cache, dep.Identifier); err != nil {
					return err
				}
			}
		}
		return nil
	}

	cleanurl, version, err := PrepUrl(liburl)
	if err != nil {
		return err
	}

	pkg, err := cache.GetPackage("", "", filepath.Join(strings.TrimPrefix(cleanurl, "https://"), version))
	if err != nil {
		return err
	}

	var pkgConf project.Conf
	var ident, ver string
	if pkg == (Package{}) {
		color.Green("Package not found locally, cloning...")
		pkgConf, ident, ver, err = InstallLibrary(&cache, liburl)
		if err != nil {
			return err
		}
	} else {
		ident = pkg.Identifier
		ver = pkg.Version
		pkgConf, err = project.Load(pkg.Path)
		if err != nil {
			return err
		}
	}

	conf.Dependencies = append(conf.Dependencies, project.Dependency{
		Package:    pkgConf.Name,
		Version:    ver,
		Identifier: ident,
	})
	if err := conf.Save(project.ConfFile, true); err != nil {
		return err
	}

	fmt.Println("Added package", pkgConf.Name, "to the project.")
	printPackageDetails(pkgConf)
	return nil
}

func libInfo(c *cli.Context) error {
	liburl := c.Args().First()

	if liburl == "" {
		conf, err := project.Load(".")
		if err != nil {
			return err
		}
		printPackageDetails(conf)
		return nil
	}

	cache := PackageCache{}
	if err := cache.Init(); err != nil {
		return err
	}
	if err := cache.CacheScan(true); err != nil {
		return err
	}

	pkg, err := cache.GetPackage("", "", liburl)
	if err != nil {
		return err
	}
	if pkg == (Package{}) {
		return cli.Exit(color.RedString("Error: Package %s is not installed", liburl), 1)
	}

	conf, err := project.Load(pkg.Path)
	if err != nil {
		return err
	}
	printPackageDetails(conf)
	return nil
}

func printPackageDetails(conf project.Conf) {
	fmt.Println("--------------------------------------------------")
	fmt.Println("                  Package Details                 ")
	fmt.Println("--------------------------------------------------")
	fmt.Printf("Name        : %s\n", conf.Name)
	fmt.Printf("Description : %s\n", conf.Description)
	fmt.Printf("Version     : %s\n", conf.Version)
	fmt.Printf("Main File   : %s\n", conf.Main)
	fmt.Printf("Author      : %s\n", conf.Author)
	fmt.Printf("License     : %s\n", conf.License)
	fmt.Println("--------------------------------------------------")
}

// PrepUrl normalizes a package reference: bare owner/repo paths resolve to
// GitHub, and an optional @branch suffix selects the version.
func PrepUrl(liburl string) (u, ver string, e error) {
	version := "main"
	if strings.Contains(liburl, "@") {
		split := strings.Split(liburl, "@")
		liburl = split[0]
		version = split[1]
	} else {
		color.Yellow("Branch name not specified, defaulting to 'main'")
	}

	parsedUrl, err := url.Parse(liburl)
	if err != nil {
		return "", "", err
	}

	if parsedUrl.Hostname() == "" {
		liburl = "https://github.com/" + liburl
	}
	if !strings.HasPrefix(liburl, "http://") && !strings.HasPrefix(liburl, "https://") {
		liburl = "https://" + liburl
	}
	return liburl, version, nil
}

// InstallLibrary clones a package into the cache and records it in the
// cache index.
func InstallLibrary(cache *PackageCache, liburl string) (conf project.Conf, ident, ver string, e error) {
	liburl, version, err := PrepUrl(liburl)
	if err != nil {
		return project.Conf{}, "", "", err
	}

	installDir := filepath.Join(cache.BaseDir, strings.TrimPrefix(liburl, "https://"), version)
	if err := os.MkdirAll(installDir, 0700); err != nil {
		return project.Conf{}, "", "", err
	}

	_, err = git.PlainClone(installDir, false, &git.CloneOptions{
		URL:           liburl,
		SingleBranch:  true,
		Depth:         1,
		ReferenceName: plumbing.NewBranchReferenceName(version),
	})
	if err != nil {
		return project.Conf{}, "", "", err
	}

	conf, err = project.Load(installDir)
	if err != nil {
		return project.Conf{}, "", "", err
	}

	cache.PkgList = append(cache.PkgList, Package{
		Name:       conf.Name,
		Version:    conf.Version,
		Identifier: strings.TrimPrefix(liburl, "https://"),
		Path:       installDir,
	})
	if err := cache.CacheSave(); err != nil {
		return project.Conf{}, "", "", err
	}

	return conf, strings.TrimPrefix(liburl, "https://"), version, nil
}

// PackageCache is the on-disk index of installed packages, kept under the
// user's home directory with a gob-encoded listing.
type PackageCache struct {
	BaseDir string
	RootDir string
	PkgList []Package
}

type Package struct {
	Name       string
	Version    string
	Identifier string
	Path       string
}

func (p *PackageCache) Init() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	libDir := path.Join(homeDir, ".local", "lib", "espresso")
	if runtime.GOOS == "windows" {
		libDir = path.Join(homeDir, "AppData", "Local", "Programs", "espresso")
	}

	if err := os.MkdirAll(libDir, 0700); err != nil {
		return err
	}

	cacheDir := path.Join(libDir, "packages")
	if err := os.Mkdir(cacheDir, 0700); err != nil && !os.IsExist(err) {
		return err
	}

	p.RootDir = libDir
	p.BaseDir = cacheDir
	p.PkgList = make([]Package, 0)

	return nil
}

// DeepCacheScan rebuilds the index by walking the cache directory for
// package configs.
func (p *PackageCache) DeepCacheScan() error {
	return filepath.WalkDir(p.BaseDir, func(walked string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}

		conf, err := project.Load(walked)
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}

		identifier := strings.TrimPrefix(walked, p.BaseDir)
		identifier = strings.TrimPrefix(identifier, "/")

		p.PkgList = append(p.PkgList, Package{
			Name:       conf.Name,
			Version:    conf.Version,
			Identifier: identifier,
			Path:       walked,
		})
		return filepath.SkipDir
	})
}

func (p *PackageCache) CacheScan(deepOnFail bool) error {
	cacheFile, err := os.Open(path.Join(p.BaseDir, "cache.bin"))
	if err != nil {
		if os.IsNotExist(err) && deepOnFail {
			fmt.Println("Cache file not found, performing deep scan...")
			if err := p.DeepCacheScan(); err != nil {
				return err
			}
			return p.CacheSave()
		}
		return err
	}
	defer cacheFile.Close()

	return gob.NewDecoder(cacheFile).Decode(&p.PkgList)
}

func (p *PackageCache) CacheSave() error {
	cacheFile, err := os.Create(path.Join(p.BaseDir, "cache.bin"))
	if err != nil {
		return err
	}
	defer cacheFile.Close()

	return gob.NewEncoder(cacheFile).Encode(p.PkgList)
}

func (p *PackageCache) GetPackage(name, version, identifier string) (Package, error) {
	for _, pkg := range p.PkgList {
		if (pkg.Name == name || name == "") && pkg.Identifier == identifier {
			if version == "" || version == "*" || version == pkg.Version {
				return pkg, nil
			}
		}
	}
	return Package{}, nil
}

func (p *PackageCache) HasPackage(name, version, identifier string) (bool, error) {
	for _, pkg := range p.PkgList {
		if pkg.Name != name || pkg.Identifier != identifier {
			continue
		}
		if version == "" || version == "*" {
			return true, nil
		}

		sver, err := util.Parse(pkg.Version)
		if err != nil {
			return false, err
		}
		sat, err := sver.Satisfies(version)
		if err != nil {
			return false, err
		}
		if sat {
			return true, nil
		}
	}
	return false, nil
}
