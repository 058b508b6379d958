// Command stepsim runs ballistics scenarios with the step simulator.
package main

import "github.com/sarchlab/stepsim/stepsim/cmd"

func main() {
	cmd.Execute()
}
