// Copyright © 2025 The furlint authors

package main

import "github.com/furlint/furlint/cmd"

func main() {
	cmd.Execute()
}
