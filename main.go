package main

import "github.com/loguefx/Steam-APK/cmd"

func main() {
	cmd.Execute()
}
