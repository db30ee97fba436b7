// Package techtree models the prerequisite technology nodes a stage design
// requires. The tree is a set of dependency chains sharing the Start root;
// DependsOn is the partial order over them and NodeSet keeps only the maximal
// nodes of a design's requirements.
package techtree
