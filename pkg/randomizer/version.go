package randomizer

// Version is the release version, overridden at build time with
// -ldflags "-X github.com/mesh-intelligence/randomizer/pkg/randomizer.Version=...".
var Version = "0.1.0"
