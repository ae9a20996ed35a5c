package main

import "embed"

// docsFS holds the help topic pages served by 'anistep help <topic>'.
//
//go:embed docs
var docsFS embed.FS
