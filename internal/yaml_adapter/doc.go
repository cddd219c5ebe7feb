// Package yaml_adapter reads SWAN run configurations written in YAML.
//
// The document's node tree is translated into the same generic value tree
// the HCL adapter produces: mappings become objects, sequences become lists
// and scalars become numbers, booleans, strings or null according to their
// resolved tag. Duplicate keys in one mapping are rejected.
package yaml_adapter
