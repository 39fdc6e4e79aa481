package main

import (
	"os"

	prover "github.com/kysee/bls377-snark/provers"
	"github.com/kysee/bls377-snark/provers/types"
)

func main() {
	prover.ProverMain(types.NewConfig(os.Args...))
}
