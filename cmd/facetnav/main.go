// Command facetnav runs the faceted navigation engine either as a JSON
// HTTP server (-serve) or as a one-shot CLI query over a ground program
// file.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/drwadu/minifasb/pkg/nav"
	"github.com/drwadu/minifasb/pkg/server"
	"github.com/drwadu/minifasb/pkg/term"
)

func main() {
	port := flag.Int("port", 8080, "HTTP server port")
	serve := flag.Bool("serve", false, "start the HTTP server instead of running a one-shot query")
	programFile := flag.String("program", "", "ground logic program file")
	args := flag.String("args", "0", "comma-separated solver args (first is the model-count bound, 0 means all)")
	kindFlag := flag.String("kind", "And", "navigation kind: And or AndOr")
	route := flag.String("route", "", "whitespace-separated route tokens to apply before the query, e.g. \"& a | b\"")
	step := flag.String("step", "", "mode to pick the next facet by, e.g. \"MaxWeighted:FacetCounting\" or \"GoalOriented\"")
	enumerate := flag.Bool("enumerate", false, "enumerate and print the models reachable under the route, up to the -args model-count bound")
	flag.Parse()

	if *serve {
		srv := server.New()
		addr := fmt.Sprintf(":%d", *port)
		log.Printf("Starting facetnav server on http://localhost%s", addr)
		if err := srv.ListenAndServe(addr); err != nil {
			log.Fatalf("Server error: %v", err)
		}
		return
	}

	if *programFile == "" {
		log.Fatal("a -program file is required outside -serve mode")
	}
	content, err := os.ReadFile(*programFile)
	if err != nil {
		log.Fatalf("reading program file: %v", err)
	}

	kind := nav.KindAnd
	if *kindFlag == "AndOr" {
		kind = nav.KindAndOr
	}

	var solverArgs []string
	if *args != "" {
		solverArgs = strings.Split(*args, ",")
	}

	engine, err := nav.New(kind, string(content), solverArgs, term.New())
	if err != nil {
		log.Fatalf("grounding program: %v", err)
	}

	if *route != "" {
		engine.Delta(strings.Fields(*route))
	}
	fmt.Printf("route: %s\n", engine.RouteRepr())

	if *step != "" {
		mode, err := parseModeFlag(*step)
		if err != nil {
			log.Fatalf("parsing -step: %v", err)
		}
		repr, found, err := engine.Step(mode)
		if err != nil {
			log.Fatalf("step error: %v", err)
		}
		if !found {
			fmt.Println("step: no facet remains")
		} else {
			fmt.Printf("step: %s\n", repr)
		}
	}

	if *enumerate {
		models, err := engine.Enumerate(nil)
		if err != nil {
			log.Fatalf("enumerate error: %v", err)
		}
		if len(solverArgs) > 0 {
			if n, err := strconv.Atoi(solverArgs[0]); err == nil && n > 0 && len(models) > n {
				models = models[:n]
			}
		}
		for _, m := range models {
			parts := make([]string, len(m))
			for i, sym := range m {
				parts[i] = sym.String()
			}
			fmt.Println(strings.Join(parts, " "))
		}
		fmt.Printf("found %d\n", len(models))
	}
}

func parseModeFlag(spec string) (nav.Mode, error) {
	parts := strings.SplitN(spec, ":", 2)
	var m nav.Mode
	switch parts[0] {
	case "GoalOriented":
		m.Kind = nav.GoalOriented
		return m, nil
	case "MinWeighted":
		m.Kind = nav.MinWeighted
	case "MaxWeighted":
		m.Kind = nav.MaxWeighted
	default:
		return m, fmt.Errorf("unknown mode kind %q", parts[0])
	}
	if len(parts) != 2 {
		return m, fmt.Errorf("%q needs a weight, e.g. %q", spec, parts[0]+":FacetCounting")
	}
	switch parts[1] {
	case "FacetCounting":
		m.Weight = nav.FacetCounting
	case "AnswerSetCounting":
		m.Weight = nav.AnswerSetCounting
	case "BcCounting":
		m.Weight = nav.BcCounting
	case "CcCounting":
		m.Weight = nav.CcCounting
	default:
		return m, fmt.Errorf("unknown weight %q", parts[1])
	}
	return m, nil
}
