// Package baseline implements the Mean, Naive and Seasonal Naive benchmark
// forecasts with prediction intervals.
//
// Each constructor validates its input and returns the forecast directly:
//
//	f, err := baseline.NewSeasonalNaive(series, 12, 12, nil) // 80% and 95%
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(f.Point, f.Lower[1], f.Upper[1])
//
// Fitted concatenates the observations with the point forecasts.
package baseline
