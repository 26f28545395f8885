// Package settings is the host side of the settings screens: it persists
// grouped model variables to an INI file and registers the custom effects
// the bundled model uses.
package settings
