package main

import (
	"os"
	"path/filepath"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/logger"
	circuit "github.com/kysee/bls377-snark/circuits"
)

const rootDir = "."

func main() {
	_, _, _, err := SetupCircuit()
	if err != nil {
		println("error", err.Error())
		return
	}
}

func SetupCircuit() (constraint.ConstraintSystem, groth16.ProvingKey, groth16.VerifyingKey, error) {
	logger.Disable()

	buildDir := filepath.Join(rootDir, ".build")
	if err := os.MkdirAll(buildDir, 0755); err != nil {
		return nil, nil, nil, err
	}
	ccsPath := filepath.Join(buildDir, "CompressionCircuit.ccs")
	pkPath := filepath.Join(buildDir, "CompressionCircuit.pk")
	vkPath := filepath.Join(buildDir, "CompressionCircuit.vk")

	//
	// Step 1: Compile circuit and save to file
	println("🕧 Compile CompressionCircuit circuit...")
	// Compile with the BW6-761 scalar field (native BLS12-377 coordinates)
	ccs, err := frontend.Compile(ecc.BW6_761.ScalarField(), r1cs.NewBuilder, &circuit.CompressionCircuit{})
	if err != nil {
		return nil, nil, nil, err
	}

	println("Constraint system saving to", ccsPath, "...")
	fccs, _ := os.Create(ccsPath)
	defer fccs.Close()
	_, err = ccs.WriteTo(fccs)
	if err != nil {
		return nil, nil, nil, err
	}
	println("constraints:", ccs.GetNbConstraints(), "public inputs:", ccs.GetNbPublicVariables())
	println("✅ Compile complete")

	//
	// Step 2: Setup (generate proving and verifying keys)
	println("🕧 Generating proving and verifying keys...")
	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return nil, nil, nil, err
	}

	println("Proving key saving to", pkPath, "...")
	fpk, _ := os.Create(pkPath)
	defer fpk.Close()
	_, err = pk.WriteTo(fpk)
	if err != nil {
		return nil, nil, nil, err
	}

	println("Verifying key saving to", vkPath, "...")
	fvk, _ := os.Create(vkPath)
	defer fvk.Close()
	_, err = vk.WriteTo(fvk)
	if err != nil {
		return nil, nil, nil, err
	}
	println("✅ Setup complete")

	return ccs, pk, vk, nil
}
