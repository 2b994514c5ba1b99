// Package loader reads samples, labels and network parameters from a data
// directory.
//
// Two parameter formats are supported:
//   - CSV: one weights/biases file pair per layer (the layout of the
//     original data sets)
//   - SafeTensors: a single bundle with every layer, preferred when present
//
// CSV reading is forgiving: absent fields, unparseable fields and rows past
// the end of a short file are filled with a FillPolicy sentinel and
// reported through Stats instead of failing the load. Only I/O failures and
// parameters that do not fit the expected topology are errors.
//
// Example:
//
//	dir, err := loader.Discover(loader.DefaultSearchPaths)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	l := loader.New(loader.Layout{Dir: dir, Seed: 3})
//	net, err := l.LoadNetwork(nn.DefaultTopology)
package loader
