package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"
)

// renderCSV serializes ordered subfolders into the report's CSV bytes.
// Records end in CRLF, as spreadsheet tools expect.
func renderCSV(subfolders []SubfolderRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = true

	if err := w.Write(reportHeader); err != nil {
		return nil, err
	}
	if err := w.WriteAll(reportRows(subfolders)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Node represents an entry in the report tree.
type Node struct {
	Label    string
	Children []*Node
}

// buildTree turns ordered subfolders into a two-level tree under the root's name.
// Order is kept as given; the report has already been sorted.
func buildTree(subfolders []SubfolderRecord, rootPath string) *Node {
	root := &Node{Label: filepath.Base(filepath.Clean(rootPath))}
	for _, sub := range subfolders {
		node := &Node{Label: fmt.Sprintf("%s (%d)", sub.Name, sub.TotalAlphaCount)}
		for _, file := range sub.Files {
			label := fmt.Sprintf("%s (%d)", file.Name, file.AlphaCount)
			if text := file.FollowingDayText(); text != "" {
				label += " [" + text + "]"
			}
			node.Children = append(node.Children, &Node{Label: label})
		}
		root.Children = append(root.Children, node)
	}
	return root
}

// printTree generates the string representation of the tree.
func printTree(root *Node) string {
	var builder strings.Builder
	builder.WriteString(root.Label)
	builder.WriteString("\n")
	printNode(&builder, root.Children, "")
	return builder.String()
}

func printNode(builder *strings.Builder, children []*Node, prefix string) {
	for i, node := range children {
		connector := "├── "
		newPrefix := prefix + "│   "
		if i == len(children)-1 {
			connector = "└── "
			newPrefix = prefix + "    "
		}

		builder.WriteString(prefix)
		builder.WriteString(connector)
		builder.WriteString(node.Label)
		builder.WriteString("\n")

		if len(node.Children) > 0 {
			printNode(builder, node.Children, newPrefix)
		}
	}
}
