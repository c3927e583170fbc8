// Package authz is the clinic's authorization core. It decides which staff
// identity may reach which screen and which navigation entries it is shown.
//
// Every call site (HTTP route guards, the navigation API, the menu) goes
// through Engine so that reachability and visibility cannot drift apart.
// The package performs no I/O: identities are loaded by the caller and the
// policy table is built once at startup.
package authz
