package vdom

import (
	"fmt"
	"sync"
)

// HIDGenerator generates unique hydration IDs for interactive elements.
type HIDGenerator struct {
	counter uint32
	mu      sync.Mutex
}

// NewHIDGenerator creates a new HIDGenerator.
func NewHIDGenerator() *HIDGenerator {
	return &HIDGenerator{}
}

// Next returns the next hydration ID (e.g., "h1", "h2", ...).
func (g *HIDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("h%d", g.counter)
}

// Reset resets the counter to 0.
func (g *HIDGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter = 0
}

// Current returns the current counter value without incrementing.
func (g *HIDGenerator) Current() uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.counter
}

// AssignHIDs walks the tree and assigns HIDs to interactive elements.
// An element is interactive if it has event handlers (props starting with "on").
// Nodes that already carry a HID keep it, so a binding pass may pre-assign.
func AssignHIDs(node *VNode, gen *HIDGenerator) {
	if node == nil {
		return
	}

	if node.Kind == KindElement && node.IsInteractive() && node.HID == "" {
		node.HID = gen.Next()
	}

	for _, child := range node.Children {
		AssignHIDs(child, gen)
	}
}

// CollectHIDs returns a map of HID to VNode for all nodes with HIDs.
func CollectHIDs(node *VNode) map[string]*VNode {
	result := make(map[string]*VNode)
	collectHIDs(node, result)
	return result
}

func collectHIDs(node *VNode, result map[string]*VNode) {
	if node == nil {
		return
	}

	if node.HID != "" {
		result[node.HID] = node
	}

	for _, child := range node.Children {
		collectHIDs(child, result)
	}
}

// FindByHID finds a node by its HID in the tree.
func FindByHID(node *VNode, hid string) *VNode {
	if node == nil {
		return nil
	}

	if node.HID == hid {
		return node
	}

	for _, child := range node.Children {
		if found := FindByHID(child, hid); found != nil {
			return found
		}
	}

	return nil
}

// FindByKey finds a node by its stable key in the tree.
func FindByKey(node *VNode, key string) *VNode {
	if node == nil || key == "" {
		return nil
	}

	if node.Key == key {
		return node
	}

	for _, child := range node.Children {
		if found := FindByKey(child, key); found != nil {
			return found
		}
	}

	return nil
}

// FindByID finds an element by its id attribute in the tree.
func FindByID(node *VNode, id string) *VNode {
	if node == nil || id == "" {
		return nil
	}

	if node.AttrText("id") == id {
		return node
	}

	for _, child := range node.Children {
		if found := FindByID(child, id); found != nil {
			return found
		}
	}

	return nil
}

// CountInteractive returns the number of interactive elements in the tree.
func CountInteractive(node *VNode) int {
	if node == nil {
		return 0
	}

	count := 0
	if node.Kind == KindElement && node.IsInteractive() {
		count = 1
	}

	for _, child := range node.Children {
		count += CountInteractive(child)
	}

	return count
}

// ClearHIDs removes all HIDs from the tree.
func ClearHIDs(node *VNode) {
	if node == nil {
		return
	}

	node.HID = ""

	for _, child := range node.Children {
		ClearHIDs(child)
	}
}
