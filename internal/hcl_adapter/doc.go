// Package hcl_adapter reads SWAN run configurations written in HCL.
//
// A file is translated into the generic value tree the component decoders
// consume. Attributes become object attributes, a block's first label
// becomes its model_type, repeated blocks of one type become a list and
// nested blocks nest. Expressions are evaluated as literals with a small
// set of pure functions; references to variables are rejected.
package hcl_adapter
