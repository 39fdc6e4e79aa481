package main

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	circuit "github.com/kysee/bls377-snark/circuits"
	"github.com/kysee/bls377-snark/types"
)

// Verifies a saved compression proof against the verifying key produced by
// the setup step. Usage: verify_proof <proof-epoch-N.json>
func main() {
	if len(os.Args) < 2 {
		println("usage: verify_proof <proof-data.json>")
		os.Exit(1)
	}

	// Read the verifying key from file (to ensure consistency with proving key)
	vkFile, err := os.Open("../.build/CompressionCircuit.vk")
	if err != nil {
		panic(err)
	}
	defer vkFile.Close()

	vk := groth16.NewVerifyingKey(ecc.BW6_761)
	_, err = vk.ReadFrom(vkFile)
	if err != nil {
		panic(err)
	}

	// Read the proof data
	blob, err := os.ReadFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	var proofData types.ProofData
	if err := json.Unmarshal(blob, &proofData); err != nil {
		panic(err)
	}

	proof := groth16.NewProof(ecc.BW6_761)
	if _, err := proof.ReadFrom(bytes.NewReader(proofData.Proof)); err != nil {
		panic(err)
	}

	// Rebuild the public witness from the published sign bits
	assignment := &circuit.CompressionCircuit{
		SigYBit: int(proofData.SigYBit),
		ApkYBit: int(proofData.ApkYBit),
	}
	publicWitness, err := frontend.NewWitness(assignment, ecc.BW6_761.ScalarField(), frontend.PublicOnly())
	if err != nil {
		panic(err)
	}

	if err := groth16.Verify(proof, vk, publicWitness); err != nil {
		println("❌ proof verification failed:", err.Error())
		os.Exit(1)
	}

	println("✅ proof verified for epoch", proofData.Epoch)
}
