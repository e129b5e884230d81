package version

// Version is the application version, overridable at build time via
// -ldflags "-X .../internal/version.Version=...".
var Version = "1.2.0"
