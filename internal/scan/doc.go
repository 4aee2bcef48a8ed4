// Discovers definition files in a source tree.
//
// A definition file is any file with the ".def" extension. The scan walks
// the tree once per invocation and returns slash-separated relative paths
// in sorted order; nothing is cached between runs.
package scan
