package domain

import (
	"path/filepath"
	"strings"
)

// Category groups artifact types by where their output lands under the build directory.
type Category int

const (
	// CategoryIntermediates holds outputs consumed only by other tasks.
	CategoryIntermediates Category = iota
	// CategoryOutputs holds final, user-facing outputs.
	CategoryOutputs
	// CategoryGenerated holds generated sources.
	CategoryGenerated
	// CategoryReports holds diagnostics and reports.
	CategoryReports
)

// String returns the lowercase category name.
func (c Category) String() string {
	switch c {
	case CategoryIntermediates:
		return "intermediates"
	case CategoryOutputs:
		return "outputs"
	case CategoryGenerated:
		return "generated"
	case CategoryReports:
		return "reports"
	default:
		return "unknown"
	}
}

// OutputPath returns the path fragment, relative to the build directory, for this category.
func (c Category) OutputPath() string {
	return c.String()
}

// ParseCategory converts a category name to a Category.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(s) {
	case "intermediates":
		return CategoryIntermediates, true
	case "outputs":
		return CategoryOutputs, true
	case "generated":
		return CategoryGenerated, true
	case "reports":
		return CategoryReports, true
	default:
		return 0, false
	}
}

// Kind tells whether an artifact is a single file or a directory.
type Kind int

const (
	// KindFile is a single regular file.
	KindFile Kind = iota
	// KindDirectory is a directory.
	KindDirectory
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	if k == KindDirectory {
		return "directory"
	}
	return "file"
}

// ParseKind converts a kind name to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(s) {
	case "file":
		return KindFile, true
	case "directory", "dir":
		return KindDirectory, true
	default:
		return 0, false
	}
}

// ArtifactType identifies a kind of build output.
// It is a comparable value and is used as a map key.
type ArtifactType struct {
	Name     string
	Category Category
	Kind     Kind
}

// String returns the artifact type name.
func (t ArtifactType) String() string {
	return t.Name
}

// DirName returns the lowercase directory name of the type.
func (t ArtifactType) DirName() string {
	return strings.ToLower(t.Name)
}

// OutputPath returns the category path fragment of the type.
func (t ArtifactType) OutputPath() string {
	return t.Category.OutputPath()
}

// OutputDir returns the directory under buildDir that holds outputs of this type.
func (t ArtifactType) OutputDir(buildDir string) string {
	return filepath.Join(buildDir, t.OutputPath(), t.DirName())
}

// Built-in artifact types.
var (
	JavacClasses         = ArtifactType{Name: "JAVAC_CLASSES", Category: CategoryIntermediates, Kind: KindDirectory}
	JavaResources        = ArtifactType{Name: "JAVA_RESOURCES", Category: CategoryIntermediates, Kind: KindDirectory}
	MergedManifests      = ArtifactType{Name: "MERGED_MANIFESTS", Category: CategoryIntermediates, Kind: KindDirectory}
	MergedResources      = ArtifactType{Name: "MERGED_RESOURCES", Category: CategoryIntermediates, Kind: KindDirectory}
	ProcessedResources   = ArtifactType{Name: "PROCESSED_RES", Category: CategoryIntermediates, Kind: KindDirectory}
	Dex                  = ArtifactType{Name: "DEX", Category: CategoryIntermediates, Kind: KindDirectory}
	RClassJar            = ArtifactType{Name: "COMPILE_ONLY_NOT_NAMESPACED_R_CLASS_JAR", Category: CategoryIntermediates, Kind: KindFile}
	GeneratedBuildConfig = ArtifactType{Name: "GENERATED_BUILD_CONFIG", Category: CategoryGenerated, Kind: KindDirectory}
	Bundle               = ArtifactType{Name: "BUNDLE", Category: CategoryOutputs, Kind: KindFile}
	Apk                  = ArtifactType{Name: "APK", Category: CategoryOutputs, Kind: KindDirectory}
	Aar                  = ArtifactType{Name: "AAR", Category: CategoryOutputs, Kind: KindFile}
	LintReport           = ArtifactType{Name: "LINT_REPORT", Category: CategoryReports, Kind: KindFile}
)

// BuiltinArtifactTypes returns the artifact types every catalog starts with.
func BuiltinArtifactTypes() []ArtifactType {
	return []ArtifactType{
		JavacClasses,
		JavaResources,
		MergedManifests,
		MergedResources,
		ProcessedResources,
		Dex,
		RClassJar,
		GeneratedBuildConfig,
		Bundle,
		Apk,
		Aar,
		LintReport,
	}
}
