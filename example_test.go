package vignette_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/vignette"
	"github.com/aretw0/vignette/pkg/adapters/rehearsal"
	"github.com/aretw0/vignette/pkg/domain"
)

// ExampleDirector_Compile compiles a request and plays it on a rehearsal host.
func ExampleDirector_Compile() {
	d, err := vignette.New()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	script, err := d.Compile(ctx, domain.Request{
		Scene:    "park",
		Elements: []domain.Element{{Keyword: "cat", Count: 3}, {Keyword: "unicorn"}},
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("first action:", script.Actions[0].Kind, "with", len(script.Actions[0].Placed), "members")
	fmt.Println("missing:", script.Missing)

	report, err := d.NewPlayer(rehearsal.New()).Play(ctx, script)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("failed:", report.Count(domain.OutcomeFailed))

	// Output:
	// first action: spawn_group with 3 members
	// missing: [unicorn]
	// failed: 0
}
