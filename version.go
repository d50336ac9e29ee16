package procwise

// Version is the current release of the module.
var Version = "0.1.0"
