package internal

// Version is the worttrainer release version.
const Version = "0.3.0"
