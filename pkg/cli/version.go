package cli

// Version is the release this binary was built from. Release builds set it
// with -ldflags "-X github.com/Fepozopo/tpaint/pkg/cli.Version=...".
var Version = "0.1.0"
