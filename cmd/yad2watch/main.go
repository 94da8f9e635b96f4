// Package main provides the entry point for the yad2watch CLI.
package main

func main() {
	Execute()
}
