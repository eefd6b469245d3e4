package main

import "github.com/inovacc/petgallery/cmd"

func main() {
	cmd.Execute()
}
