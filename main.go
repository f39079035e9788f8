package main

import "github.com/ronaldsalazarvasquez/Inventario-Taller/cmd"

func main() {
	cmd.Execute()
}
