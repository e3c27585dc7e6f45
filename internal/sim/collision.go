package sim

// CollisionKind tags the variant held by a CollisionResult.
type CollisionKind int

const (
	CollisionNone CollisionKind = iota
	CollisionSelf
	CollisionBoundary
	CollisionFood
	CollisionObstacle
)

// Edge identifies which boundary was crossed.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeLeft
	EdgeRight
	EdgeTop
	EdgeBottom
)

// CollisionResult is a tagged variant: exactly one kind per query.
// Only the fields for the tagged kind are meaningful.
type CollisionResult struct {
	Kind          CollisionKind
	SegmentIndex  int  // CollisionSelf: body index that was hit
	Edge          Edge // CollisionBoundary
	FoodIndex     int  // CollisionFood
	ObstacleIndex int  // CollisionObstacle
	// Cell is the position where the collision was detected. For
	// continuous checks this is the sampled intermediate cell, which
	// may differ from the head's final position.
	Cell Vec2
}

var collisionNone = CollisionResult{Kind: CollisionNone}

// CheckBoundary reports whether head left the board. Cheapest check,
// always evaluated first.
func CheckBoundary(head Vec2, width, height int) CollisionResult {
	switch {
	case head.X < 0:
		return CollisionResult{Kind: CollisionBoundary, Edge: EdgeLeft, Cell: head}
	case head.X >= width:
		return CollisionResult{Kind: CollisionBoundary, Edge: EdgeRight, Cell: head}
	case head.Y < 0:
		return CollisionResult{Kind: CollisionBoundary, Edge: EdgeTop, Cell: head}
	case head.Y >= height:
		return CollisionResult{Kind: CollisionBoundary, Edge: EdgeBottom, Cell: head}
	}
	return collisionNone
}

// CheckSelf compares head against body segments beyond the safe zone.
// The SafeSegmentCount segments nearest the head are exempt: a tight
// turn can put the head next to them for one move without overlap.
func CheckSelf(head Vec2, body []Segment) CollisionResult {
	for i := SafeSegmentCount; i < len(body); i++ {
		if body[i].Pos == head {
			return CollisionResult{Kind: CollisionSelf, SegmentIndex: i, Cell: head}
		}
	}
	return collisionNone
}

// CheckContinuous runs self-collision at ceil(manhattan) evenly spaced
// sample cells between previousHead and head. Catches tunneling when a
// power moves the head more than one cell in a single step.
func CheckContinuous(head Vec2, body []Segment, previousHead Vec2) CollisionResult {
	steps := manhattan(previousHead, head)
	if steps <= 1 {
		return CheckSelf(head, body)
	}
	dx := head.X - previousHead.X
	dy := head.Y - previousHead.Y
	for s := 1; s <= steps; s++ {
		sample := Vec2{
			X: previousHead.X + dx*s/steps,
			Y: previousHead.Y + dy*s/steps,
		}
		for i := SafeSegmentCount; i < len(body); i++ {
			if body[i].Pos == sample {
				return CollisionResult{Kind: CollisionSelf, SegmentIndex: i, Cell: sample}
			}
		}
	}
	return collisionNone
}

// CheckFood scans the food list for an exact position match. First
// match by list order wins, which keeps tie-breaking deterministic.
func CheckFood(head Vec2, food []Vec2) CollisionResult {
	for i, p := range food {
		if p == head {
			return CollisionResult{Kind: CollisionFood, FoodIndex: i, Cell: head}
		}
	}
	return collisionNone
}

// CheckObstacle scans the obstacle list for an exact position match.
func CheckObstacle(head Vec2, obstacles []Vec2) CollisionResult {
	for i, p := range obstacles {
		if p == head {
			return CollisionResult{Kind: CollisionObstacle, ObstacleIndex: i, Cell: head}
		}
	}
	return collisionNone
}
