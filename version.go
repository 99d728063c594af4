// version.go
package qdcompress

// Version is the binding's version, surfaced by the qdz tool.
const Version = "0.3.1"
