package main

import "github.com/vibast-solutions/ms-go-bridal/cmd"

func main() {
	cmd.Execute()
}
