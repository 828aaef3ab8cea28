// Package main is the entry point for the admingate admin panel.
package main

func main() {
	Execute()
}
