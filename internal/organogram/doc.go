// Package organogram reads and writes the project organogram held in the
// graph store: Domain → Component → Task plus the records hanging off a task.
//
// # Context Assembler
//
// Assembler.GetContext resolves a three-segment task path and returns a
// ContextBundle scoped to that one task:
//
//	assembler := organogram.NewAssembler(client)
//	bundle, err := assembler.GetContext(ctx, "Population → Generator → Faker Integration")
//	if err != nil {
//	    var nf *organogram.NotFoundError
//	    if errors.As(err, &nf) {
//	        log.Printf("no %s named %q", nf.Segment, nf.Name)
//	    }
//	    return err
//	}
//	fmt.Println(bundle.Summary.BlockedBy)
//
// Resolution and gathering run as a single read query. A missing segment
// fails the whole call; partial bundles are never returned.
//
// # Graph Relationships
//
//	Domain -[:HAS_COMPONENT]-> Component -[:HAS_TASK]-> Task
//	Task -[:REQUIRES]-> Specification
//	Task -[:MUST_SATISFY]-> TestCriteria
//	Task -[:DEPENDS_ON]-> Task
//	Task -[:HAS_DIARY_ENTRY]-> DiaryEntry
//	Message -[:TARGETS]-> Task
//	Component -[:HAS_RFC]-> RFC
//
// # Errors
//
// Callers only need to handle three kinds of failure:
//
//   - *InvalidPathError (errors.Is ErrInvalidPath): malformed path, no store access made
//   - *NotFoundError (errors.Is ErrNotFound): names the unresolved segment
//   - *StoreUnavailableError (errors.Is ErrStoreUnavailable): wraps the graph client error
//
// Journal writes additionally reject empty input with ErrCodeInvalidInput.
package organogram
