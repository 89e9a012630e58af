/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/sj9102001/workly/cmd"

func main() {
	cmd.Execute()
}
