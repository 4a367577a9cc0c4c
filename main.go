package main

import "github.com/chirpkv/chirp/cmd"

func main() {
	cmd.Execute()
}
