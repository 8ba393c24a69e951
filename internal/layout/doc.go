// Package layout implements an iterative force-directed graph simulation.
//
// A Simulation advances a set of Bodies one Step at a time. Each step lowers
// (or raises) the energy "alpha" toward AlphaTarget, lets every registered
// Force add velocity, then integrates positions with velocity decay. Pinned
// bodies (FX/FY set) snap to their pin each step. The simulation is converged
// once alpha falls below AlphaMin.
//
// The package starts no goroutines and holds no locks; the caller owns the
// simulation and must serialize access to it.
package layout
