package prover

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/consensys/gnark-crypto/ecc"
	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/algebra/native/sw_bls12377"
	"github.com/rs/zerolog"

	"github.com/kysee/bls377-snark/bls"
	circuit "github.com/kysee/bls377-snark/circuits"
	cfgtypes "github.com/kysee/bls377-snark/provers/types"
	"github.com/kysee/bls377-snark/types"
)

// Main entry point for the proving service
func ProverMain(config *cfgtypes.Config) {
	var fetcher cfgtypes.Fetcher
	if config.EpochFile != "" {
		fetcher = NewFileFetcher(config.EpochFile)
	} else {
		fetcher = NewAPIFetcher(config.RPCEndpoint)
	}

	prover, err := NewProver(config, fetcher)
	if err != nil {
		zerolog.New(os.Stderr).Fatal().Err(err).Msg("failed to create prover")
	}

	// Load circuit artifacts first
	if err := prover.setupCircuit(); err != nil {
		prover.log.Fatal().Err(err).Msg("failed to setup circuit")
	}

	if err := prover.Run(); err != nil {
		prover.log.Fatal().Err(err).Msg("failed to run prover")
	}
}

// Prover turns epoch records into compression proofs: it checks the epoch's
// aggregate signature off-circuit, then proves that the published sign bits
// match the points.
type Prover struct {
	config  *cfgtypes.Config
	fetcher cfgtypes.Fetcher
	ccs     constraint.ConstraintSystem
	pk      groth16.ProvingKey
	hasher  bls.HashToG1
	log     zerolog.Logger
}

// NewProver creates a new Prover with the given configuration
func NewProver(config *cfgtypes.Config, fetcher cfgtypes.Fetcher) (*Prover, error) {
	_ = os.MkdirAll(config.RootDir, 0755)

	return &Prover{
		config:  config,
		fetcher: fetcher,
		hasher:  bls.XMDHasher{},
		log:     zerolog.New(os.Stdout).With().Timestamp().Str("component", "prover").Logger(),
	}, nil
}

// Run fetches epoch records starting at InitEpoch and proves them in order
func (p *Prover) Run() error {
	epoch := p.config.InitEpoch
	p.log.Info().Uint64("epoch", epoch).Msg("starting")

	outputDir := filepath.Join(p.config.RootDir, "output")
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	for {
		record, err := p.fetcher.Epoch(epoch)
		if err != nil {
			p.log.Warn().Err(err).Uint64("epoch", epoch).Msg("fetch failed, retrying")
			time.Sleep(1000 * time.Millisecond)
			continue
		}

		proofData, err := p.ProveEpoch(record)
		if err != nil {
			return fmt.Errorf("failed to prove epoch %d: %w", epoch, err)
		}

		outputPath := filepath.Join(outputDir, fmt.Sprintf("proof-epoch-%d.json", epoch))
		jsonBlob, err := json.MarshalIndent(proofData, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal proof data: %w", err)
		}
		if err := os.WriteFile(outputPath, jsonBlob, 0644); err != nil {
			return fmt.Errorf("failed to write proof file: %w", err)
		}
		p.log.Info().Uint64("epoch", epoch).Str("path", outputPath).Msg("proof saved")

		epoch++
		time.Sleep(1000 * time.Millisecond)
	}
}

// setupCircuit loads the compiled circuit and proving key from .build
func (p *Prover) setupCircuit() error {
	if p.ccs != nil {
		p.log.Info().Msg("circuit already loaded")
		return nil
	}

	ccsPath := filepath.Join(p.config.RootDir, ".build/CompressionCircuit.ccs")
	pkPath := filepath.Join(p.config.RootDir, ".build/CompressionCircuit.pk")

	p.log.Info().Str("path", ccsPath).Msg("loading CompressionCircuit")
	fCcs, err := os.Open(ccsPath)
	if err != nil {
		return fmt.Errorf("failed to open CCS file: %w", err)
	}

	p.ccs = groth16.NewCS(ecc.BW6_761)
	_, err = p.ccs.ReadFrom(fCcs)
	_ = fCcs.Close()
	if err != nil {
		return fmt.Errorf("failed to read CCS: %w", err)
	}
	p.log.Info().Int("constraints", p.ccs.GetNbConstraints()).Msg("circuit loaded")

	p.log.Info().Msg("loading proving key")
	fpk, err := os.Open(pkPath)
	if err != nil {
		return fmt.Errorf("failed to open PK file: %w", err)
	}

	p.pk = groth16.NewProvingKey(ecc.BW6_761)
	_, err = p.pk.ReadFrom(fpk)
	_ = fpk.Close()
	if err != nil {
		return fmt.Errorf("failed to read PK: %w", err)
	}

	p.log.Info().Msg("proving key loaded")
	return nil
}

// ProveEpoch verifies the epoch's aggregate signature and generates a
// compression proof for its sign bits
func (p *Prover) ProveEpoch(record *types.EpochRecord) (*types.ProofData, error) {
	witness, err := p.BuildAssignment(record)
	if err != nil {
		return nil, err
	}

	fullWitness, err := frontend.NewWitness(witness, ecc.BW6_761.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("failed to create witness: %w", err)
	}

	p.log.Info().Uint64("epoch", record.Epoch).Msg("generating proof")
	proof, err := groth16.Prove(p.ccs, p.pk, fullWitness)
	if err != nil {
		return nil, fmt.Errorf("proof generation failed: %w", err)
	}

	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize proof: %w", err)
	}

	return &types.ProofData{
		Epoch:   record.Epoch,
		Proof:   buf.Bytes(),
		SigYBit: bitToUint8(witness.SigYBit),
		ApkYBit: bitToUint8(witness.ApkYBit),
	}, nil
}

// BuildAssignment decodes the epoch record, batch-verifies the aggregate
// signature against the aggregate public key, and assembles the circuit
// witness with the encoder's sign bits as public inputs
func (p *Prover) BuildAssignment(record *types.EpochRecord) (*circuit.CompressionCircuit, error) {
	// Decode the compressed aggregate signature
	var sig bls.Signature
	if err := sig.SetBytes(record.AggregateSig); err != nil {
		return nil, fmt.Errorf("failed to decode aggregate signature: %w", err)
	}

	// Decode the aggregate public key (G2 point)
	var apkAff bls12377.G2Affine
	if _, err := apkAff.SetBytes(record.AggregatePubkey); err != nil {
		return nil, fmt.Errorf("failed to decode aggregate pubkey: %w", err)
	}
	var apkJac bls12377.G2Jac
	apkJac.FromAffine(&apkAff)
	apk := bls.NewPublicKey(apkJac)

	// Reject records whose signature does not verify; proving compression
	// bits for a bad aggregate would be misleading
	err := sig.BatchVerify(
		[]*bls.PublicKey{apk},
		bls.SigDomain,
		[]bls.Message{{Data: record.Message, Extra: record.ExtraData}},
		p.hasher,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregate signature invalid: %w", err)
	}

	sigAff := sig.Affine()

	witness := &circuit.CompressionCircuit{
		Sig:     sw_bls12377.NewG1Affine(sigAff),
		Apk:     sw_bls12377.NewG2Affine(apkAff),
		SigYBit: boolToVar(bls.SignBitG1(&sigAff)),
		ApkYBit: boolToVar(bls.SignBitG2(&apkAff)),
	}

	return witness, nil
}

func boolToVar(b bool) frontend.Variable {
	if b {
		return 1
	}
	return 0
}

func bitToUint8(v frontend.Variable) uint8 {
	if b, ok := v.(int); ok && b == 1 {
		return 1
	}
	return 0
}
