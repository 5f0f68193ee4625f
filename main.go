package main

import "github.com/vrushti/clinic_backend/cmd"

func main() {
	cmd.Execute()
}
