package models

// Subject is one named test case. RawName doubles as the subject's artifact
// directory name and its key in the metrics summary.
type Subject struct {
	AppName   string // Full identifier as listed, e.g. "Utilities/Foo.app"
	RawName   string // AppName's last path component without ".app"
	ResourceA string // First input resource, passed to the transform untouched
	ResourceB string // Second input resource, passed to the transform untouched
}

// Iteration is one numbered transform step within a subject directory
type Iteration struct {
	Index           int    // 0..MaxIterations-1
	ComparisonImage string // Last "<index>_warped_*.png" in lexicographic order
	OutputImage     string // "<index>_out.png", not verified to exist
}

// MaxIterations bounds the indices scanned per subject (0..9)
const MaxIterations = 10

// ArtifactSet is the ordered sequence of iterations found for one subject.
// Iterations are in strictly increasing Index order.
type ArtifactSet []Iteration

// ComparisonImages returns the comparison image of every iteration in order
func (a ArtifactSet) ComparisonImages() []string {
	paths := make([]string, 0, len(a))
	for _, it := range a {
		paths = append(paths, it.ComparisonImage)
	}
	return paths
}

// OutputImages returns the output image of every iteration in order
func (a ArtifactSet) OutputImages() []string {
	paths := make([]string, 0, len(a))
	for _, it := range a {
		paths = append(paths, it.OutputImage)
	}
	return paths
}

// LivePaths returns the set of paths that must survive pruning
func (a ArtifactSet) LivePaths() map[string]bool {
	live := make(map[string]bool, 2*len(a))
	for _, it := range a {
		live[it.ComparisonImage] = true
		live[it.OutputImage] = true
	}
	return live
}
