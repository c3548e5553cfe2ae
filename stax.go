// Copyright © 2021 The Stax authors

package main

import "github.com/luthersystems/stax/cmd"

func main() {
	cmd.Execute()
}
