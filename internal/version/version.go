package version

// Version is the current version of rashr.
// Bump it for every build that includes changes, using semantic versioning.
const Version = "0.3.0"
