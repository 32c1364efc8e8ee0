// Package matchers provides declarative assertions over scraper metadata and
// datastore contents fetched through pkg/scraperapi.
//
// Every matcher is an immutable value object built by a constructor (BePublic,
// HaveRowCount, HaveValuesOf, ...) and optionally configured through chained
// modifiers (On for a table, In for a field, At for a subfield inside a
// JSON-encoded field value). Evaluation happens through two entry points:
//
//   - Matches     – the positive assertion
//   - NotMatches  – the negative assertion, with its own explanation template
//
// Both return a Result carrying the boolean outcome and, on failure, a
// human-readable explanation. Evaluation is a pure function of the matcher and
// its input: no I/O, no mutation of the input snapshot, safe to run
// concurrently against the same data.
//
// Scraper matchers (ScraperMatcher) inspect a single *scraperapi.ScraperInfo.
// Dataset matchers (DatasetMatcher) scan every record of a dataset, accepting
// either a row list or the columnar keys/data table, and classify each record;
// the positive form passes when no record violates the predicate, the negative
// form rescans and passes when no record satisfies it.
//
// # Error taxonomy
//
// Three situations are kept distinct. A predicate legitimately evaluating
// false is the normal negative outcome, surfaced as Result{Passed: false}.
// A structural misuse of a matcher - missing On/In modifier, or a subfield
// value that is neither a JSON object nor a list of objects - aborts
// evaluation with an error (ErrMissingTable, ErrMissingField,
// ErrUnsupportedShape). Absent tables and fields are neither: they degrade to
// an empty key list, a zero row count, or a blank value.
//
// # Blank policy
//
// A value is blank when it is absent, nil, an empty string, or an empty
// collection. Blank field and subfield values pass every value-shape
// predicate (HaveValuesOf, HaveValuesMatching, HaveValuesStartingWith,
// HaveValuesEndingWith, HaveIntegerValues, HaveValuesWithAtLeastKeys,
// HaveValuesWithAtMostKeys), letting optional fields skip validation.
// HaveBlankValues asserts blankness itself, and HaveUniqueValues ignores
// blanks when counting occurrences.
//
// # Usage
//
//	info, _ := client.GetInfo(ctx, "planning-applications", nil)
//	res, err := matchers.HaveAtLeastKeys("name", "email").On("swdata").Matches(info)
//	if err != nil {
//	    // matcher misuse
//	}
//	if !res.Passed {
//	    fmt.Println(res.Explanation)
//	}
package matchers
