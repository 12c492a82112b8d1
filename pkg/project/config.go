package project

// Framework identifies the host UI framework variant.
type Framework string

// Supported framework variants.
const (
	// FrameworkSvelte is a plain Svelte app (Vite SPA).
	FrameworkSvelte Framework = "svelte"

	// FrameworkKit is a SvelteKit app, recognized by its root HTML shell
	// (src/app.html) or a src/routes directory.
	FrameworkKit Framework = "kit"
)

// Styling identifies the styling system in use.
type Styling string

// Supported styling systems.
const (
	StylingTailwind Styling = "tailwind"
	StylingCSS      Styling = "css"
	StylingSCSS     Styling = "scss"
	StylingNone     Styling = "none"
)

// PackageManager identifies the host's package manager.
type PackageManager string

// Supported package managers.
const (
	PackageManagerNpm  PackageManager = "npm"
	PackageManagerPnpm PackageManager = "pnpm"
	PackageManagerYarn PackageManager = "yarn"
	PackageManagerBun  PackageManager = "bun"
)

// InstallArgs returns the subcommand used to add packages with this
// manager. Dependency names are appended as trailing arguments.
func (pm PackageManager) InstallArgs() []string {
	switch pm {
	case PackageManagerNpm:
		return []string{"install"}
	case PackageManagerPnpm:
		return []string{"add"}
	case PackageManagerYarn:
		return []string{"add"}
	case PackageManagerBun:
		return []string{"add"}
	}
	return []string{"install"}
}

// Paths holds the project-relative directory layout.
// Components is always derived from Lib; it is an install target, not a
// detected directory.
type Paths struct {
	Src        string `json:"src"`
	Lib        string `json:"lib"`
	Components string `json:"components"`
}

// Config is the detected project profile. Produced once per run by
// Detect and treated as immutable afterwards.
type Config struct {
	Framework      Framework      `json:"framework"`
	TypeScript     bool           `json:"typescript"`
	Styling        Styling        `json:"styling"`
	PackageManager PackageManager `json:"packageManager"`
	Paths          Paths          `json:"paths"`
}
