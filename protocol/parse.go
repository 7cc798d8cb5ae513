package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/mstd/core"
	"github.com/katalvlaran/mstd/mst"
)

// Parse classifies line under framing f. Any grammar violation returns an
// error wrapping ErrUnknownCommand.
func Parse(f Framing, line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, unknown(line)
	}
	if f == Batch {
		return parseBatch(line, fields)
	}

	return parseStateful(line, fields)
}

// parseStateful handles the session grammar.
func parseStateful(line string, fields []string) (Command, error) {
	args := fields[1:]
	switch fields[0] {
	case "Newgraph":
		if len(args) != 1 {
			return Command{}, unknown(line)
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return Command{}, unknown(line)
		}

		return Command{Kind: KindNewGraph, N: n}, nil

	case "Newedge":
		nums, err := csvInts(args, 3)
		if err != nil {
			return Command{}, unknown(line)
		}

		return Command{Kind: KindNewEdge, U: int(nums[0]), V: int(nums[1]), W: nums[2]}, nil

	case "Removeedge":
		nums, err := csvInts(args, 2)
		if err != nil {
			return Command{}, unknown(line)
		}

		return Command{Kind: KindRemoveEdge, U: int(nums[0]), V: int(nums[1])}, nil

	case "MST":
		if len(args) < 1 || len(args) > 2 {
			return Command{}, unknown(line)
		}
		alg, err := mst.ParseAlgorithm(args[0])
		if err != nil {
			return Command{}, unknown(line)
		}
		cmd := Command{Kind: KindMST, Algorithm: alg}
		if len(args) == 2 {
			if cmd.Root, err = strconv.Atoi(args[1]); err != nil {
				return Command{}, unknown(line)
			}
		}

		return cmd, nil

	case "SCC":
		if len(args) != 0 {
			return Command{}, unknown(line)
		}

		return Command{Kind: KindSCC}, nil

	case "exit":
		return Command{Kind: KindExit}, nil
	}

	return Command{}, unknown(line)
}

// parseBatch handles "MST <ALGORITHM> u v w ..." and exit.
func parseBatch(line string, fields []string) (Command, error) {
	switch fields[0] {
	case "exit":
		return Command{Kind: KindExit}, nil
	case "MST":
	default:
		return Command{}, unknown(line)
	}
	if len(fields) < 2 {
		return Command{}, unknown(line)
	}
	alg, err := mst.ParseAlgorithm(fields[1])
	if err != nil {
		return Command{}, unknown(line)
	}

	nums := fields[2:]
	if len(nums)%3 != 0 {
		return Command{}, unknown(line)
	}
	edges := make([]core.Edge, 0, len(nums)/3)
	for i := 0; i < len(nums); i += 3 {
		u, errU := strconv.Atoi(nums[i])
		v, errV := strconv.Atoi(nums[i+1])
		w, errW := strconv.ParseInt(nums[i+2], 10, 64)
		if errU != nil || errV != nil || errW != nil {
			return Command{}, unknown(line)
		}
		edges = append(edges, core.Edge{From: u, To: v, Weight: w})
	}

	return Command{Kind: KindBatchMST, Algorithm: alg, Edges: edges}, nil
}

// csvInts parses exactly want comma-separated integers from args. Spaces
// around the commas are tolerated, so "1,2,3" and "1, 2, 3" are equal.
func csvInts(args []string, want int) ([]int64, error) {
	parts := strings.Split(strings.Join(args, ""), ",")
	if len(parts) != want {
		return nil, fmt.Errorf("want %d values, got %d", want, len(parts))
	}
	out := make([]int64, want)
	for i, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}

	return out, nil
}

func unknown(line string) error {
	return fmt.Errorf("%w: %q", ErrUnknownCommand, line)
}
