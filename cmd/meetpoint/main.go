package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"meeting-point-service/internal/domain"
	"meeting-point-service/internal/services"
)

var (
	pointsFile    string
	tolerance     float64
	maxIterations int
	seed          string
	policy        string
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "meetpoint",
		Short: "Compute the center of a set of coordinates",
		Long: `Compute the geometric median or arithmetic mean of latitude/longitude pairs.
Points are given as "lat,lon" arguments or as a JSON file of {"latitude","longitude"} objects.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&pointsFile, "file", "f", "", "JSON file with points")

	medianCmd := &cobra.Command{
		Use:   "median [lat,lon]...",
		Short: "Geometric median (Weiszfeld)",
		RunE:  runMedian,
	}
	medianCmd.Flags().Float64VarP(&tolerance, "tolerance", "t", services.DefaultMedianTolerance, "Convergence tolerance in degrees")
	medianCmd.Flags().IntVarP(&maxIterations, "max-iterations", "n", services.DefaultMedianMaxIterations, "Iteration cap")
	medianCmd.Flags().StringVar(&seed, "seed", "mean", "Starting estimate: mean or origin")
	medianCmd.Flags().StringVar(&policy, "policy", "adjust", "Estimate on an input point: adjust, snap or fail")

	meanCmd := &cobra.Command{
		Use:   "mean [lat,lon]...",
		Short: "Arithmetic mean",
		RunE:  runMean,
	}

	rootCmd.AddCommand(medianCmd, meanCmd)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runMedian(cmd *cobra.Command, args []string) error {
	points, err := loadPoints(args, pointsFile)
	if err != nil {
		return err
	}

	opts := services.MedianOptions{Tolerance: tolerance, MaxIterations: maxIterations}
	switch seed {
	case "mean":
		opts.Seed = services.SeedMean
	case "origin":
		opts.Seed = services.SeedOrigin
	default:
		return fmt.Errorf("unknown seed %q", seed)
	}
	switch policy {
	case "adjust":
		opts.OnCoincident = services.CoincidentAdjust
	case "snap":
		opts.OnCoincident = services.CoincidentSnap
	case "fail":
		opts.OnCoincident = services.CoincidentFail
	default:
		return fmt.Errorf("unknown policy %q", policy)
	}

	res, err := services.GeometricMedian(points, opts)
	if err != nil && !errors.Is(err, services.ErrNonConvergence) {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", res.Center)
	fmt.Fprintf(out, "iterations=%d converged=%t\n", res.Iterations, res.Converged)
	return nil
}

func runMean(cmd *cobra.Command, args []string) error {
	points, err := loadPoints(args, pointsFile)
	if err != nil {
		return err
	}

	center, err := services.ArithmeticCenter(points)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", center)
	return nil
}

type filePoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func loadPoints(args []string, path string) ([]domain.Coordinates, error) {
	points := make([]domain.Coordinates, 0, len(args))

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open points file: %w", err)
		}
		defer f.Close()

		fromFile, err := decodePoints(f)
		if err != nil {
			return nil, fmt.Errorf("read points file %q: %w", path, err)
		}
		points = append(points, fromFile...)
	}

	for _, arg := range args {
		c, err := parsePoint(arg)
		if err != nil {
			return nil, err
		}
		points = append(points, c)
	}

	if len(points) == 0 {
		return nil, errors.New("no points given")
	}
	return points, nil
}

func decodePoints(r io.Reader) ([]domain.Coordinates, error) {
	var raw []filePoint
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	out := make([]domain.Coordinates, 0, len(raw))
	for i, p := range raw {
		c := domain.Coordinates{Lat: p.Latitude, Lon: p.Longitude}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// parsePoint reads "lat,lon".
func parsePoint(s string) (domain.Coordinates, error) {
	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("point %q: want lat,lon", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("point %q: latitude: %w", s, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("point %q: longitude: %w", s, err)
	}

	c := domain.Coordinates{Lat: lat, Lon: lon}
	if err := c.Validate(); err != nil {
		return domain.Coordinates{}, fmt.Errorf("point %q: %w", s, err)
	}
	return c, nil
}
