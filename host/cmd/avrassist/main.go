// Command avrassist composes and applies ATmega328P peripheral settings.
package main

import "avrassist/host/cli"

func main() {
	cli.Execute()
}
