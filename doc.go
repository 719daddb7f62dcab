// Package casstcl is a dynamically typed, client-side CQL query engine.
//
// Values enter and leave the engine as dynamic types.Value data: null,
// textual scalars, or lists. The engine resolves column types from the
// live cluster schema, converts values explicitly against those types,
// generates upsert statements from flat name/value pair lists, streams
// query results one page at a time through row handlers, and bridges
// asynchronous completions onto a single dispatcher goroutine.
//
// Main components:
//
//   - Client: construction over an adapter-wrapped driver session,
//     synchronous Exec and paginated Select
//   - Statement builders: Build, BuildUpsert with unknown-column
//     policies, BuildPrepared binding by parameter name
//   - schema.Registry: idempotent column type resolution with a
//     per-table cache and a slow-path descriptor resolver hook
//   - marshal: explicit Value conversion in both directions, NULL
//     preserved end to end
//   - Dispatcher / Future: submission-ordered async completion
//     delivery
//
// Basic usage:
//
//	cluster := gocql.NewCluster("127.0.0.1")
//	session, err := cluster.CreateSession()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	client, err := casstcl.NewClient(v1.WrapSession(session),
//		casstcl.WithPageSize(500),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	stmt, err := client.BuildUpsert("app.users",
//		types.TextList("id", id, "name", "karl"),
//		casstcl.WithIfNotExists(),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := client.Exec(ctx, stmt); err != nil {
//		log.Fatal(err)
//	}
//
// Streaming a query:
//
//	stmt, _ := client.Build(casstcl.StatementSpec{
//		Query: "SELECT id, name FROM app.users",
//	})
//	err = client.Select(ctx, stmt, 0, func(row casstcl.Row) (casstcl.RowControl, error) {
//		name, _ := row.Value("name")
//		fmt.Println(name.Text())
//
//		return casstcl.Continue, nil
//	})
package casstcl
