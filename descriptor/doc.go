// Package descriptor describes an HTTP request before it is executed.
//
// A [Descriptor] holds the method, base URL, path, query parameters and
// headers of a single call. It is built once per call site and turned into
// an [*http.Request] with [Descriptor.Build]:
//
//	desc, err := descriptor.New(descriptor.MethodGet, "https://api.example.com", "/jokes/search",
//		descriptor.Params{"query": descriptor.Text("go"), "limit": descriptor.Int(10)},
//		map[string]string{"Accept": "application/json"},
//	)
//	req, err := desc.Build(ctx)
//
// Query values are a closed set: [Text], [Int] and [Float]. Dynamically typed
// maps can be bridged with [ParamsFrom], which silently drops unsupported kinds.
package descriptor
