// Package app contains the run lifecycle behind the command line: load the
// input files, bind the run period, render the control file and write it
// into the staging directory. It knows nothing about flags or exit codes.
package app
