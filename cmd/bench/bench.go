// bench measures how fast genuine solutions can be proved for a given target.
package main

import (
	"crypto/rand"
	"fmt"
	"log"
	"os"
	"path"
	"runtime/pprof"
	"time"

	"github.com/spacemeshos/solflood/puzzle"
	"github.com/spacemeshos/solflood/types"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		os.Exit(1)
	}

	if cfg.CPU {
		dir, err := os.Getwd()
		if err != nil {
			log.Fatal("cant get current dir", err)
		}

		profFilePath := path.Join(dir, "./CPU.prof")
		fmt.Printf("CPU profile: %s\n", profFilePath)

		f, err := os.Create(profFilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	var challenge types.Hash
	if _, err := rand.Read(challenge[:]); err != nil {
		log.Fatal("no entropy: ", err)
	}
	var address types.Address
	if _, err := rand.Read(address[:]); err != nil {
		log.Fatal("no entropy: ", err)
	}
	fmt.Printf("target: %d, search bound: %d, attempts: %d\n", cfg.Target, cfg.SearchBound, cfg.Attempts)

	prover := puzzle.NewHashProver(cfg.SearchBound)
	var found int
	var proveTime, verifyTime time.Duration
	for counter := 0; counter < cfg.Attempts; counter++ {
		t1 := time.Now()
		solution, err := prover.Prove(challenge, address, uint64(counter), cfg.Target)
		proveTime += time.Since(t1)
		if err != nil {
			continue
		}
		found++

		t1 = time.Now()
		if err := puzzle.Verify(solution, cfg.Target); err != nil {
			log.Fatalf("solution for counter %d does not verify: %v", counter, err)
		}
		verifyTime += time.Since(t1)
	}

	fmt.Printf("Found %d/%d solutions in %s\n", found, cfg.Attempts, proveTime)
	if found > 0 {
		fmt.Printf("Proving: %s per solution\n", proveTime/time.Duration(found))
		fmt.Printf("Verifying: %s per solution\n", verifyTime/time.Duration(found))
	}
	fmt.Printf("%d %d %d %f %f\n", cfg.Target, cfg.SearchBound, found, proveTime.Seconds(), verifyTime.Seconds())
}
