// Package api pairs a request descriptor with the shape its response decodes
// into, and executes the pair over a transport.
//
// # Declaring an endpoint
//
// Any type implementing [API] is an endpoint. [Request] is a ready-made
// implementation:
//
//	type Joke struct {
//		Value string `json:"value"`
//	}
//
//	desc, _ := descriptor.New(descriptor.MethodGet, "https://api.chucknorris.io", "/jokes/random", nil, nil)
//	random := api.NewJSON[Joke](desc)
//
// The response kind is chosen when the endpoint is declared: [Text] yields
// the body as a string, [JSON] and [YAML] decode structured bodies.
//
// # Executing
//
// [Execute] blocks until the call completes:
//
//	joke, err := api.Execute(ctx, random, nil)
//
// [ExecuteAsync] returns immediately and invokes a callback exactly once on
// another goroutine. Callers that must update state owned by a particular
// goroutine are responsible for handing the result over themselves.
//
//	api.ExecuteAsync(ctx, random, nil, func(joke Joke, err error) { ... })
//
// A nil *transport.Transport selects [transport.Shared].
package api
