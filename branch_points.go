package road2gpkg

// BranchPointRow is one lane end membership of a branch point, shaped like a
// branch_point_lanes table row
type BranchPointRow struct {
	BranchPointID string
	LaneID        string
	Side          BranchSide
	End           LaneEndType
}

// extractBranchPoints flattens the branch point graph into rows keeping the
// model's native order: for every branch point the whole A side goes first,
// then the whole B side. No deduplication or filtering happens here
func extractBranchPoints(model *RoadModel) []BranchPointRow {
	rows := []BranchPointRow{}
	for _, branchPoint := range model.BranchPoints {
		for _, laneEnd := range branchPoint.ASide {
			rows = append(rows, BranchPointRow{
				BranchPointID: branchPoint.ID,
				LaneID:        laneEnd.LaneID,
				Side:          BRANCH_SIDE_A,
				End:           laneEnd.End,
			})
		}
		for _, laneEnd := range branchPoint.BSide {
			rows = append(rows, BranchPointRow{
				BranchPointID: branchPoint.ID,
				LaneID:        laneEnd.LaneID,
				Side:          BRANCH_SIDE_B,
				End:           laneEnd.End,
			})
		}
	}
	return rows
}
