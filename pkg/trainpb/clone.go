package trainpb

import "slices"

// Clone returns a deep copy of the filter, or nil for a nil filter.
func (f *Filter) Clone() *Filter {
	if f == nil {
		return nil
	}
	c := *f
	c.LocationIDs = slices.Clone(f.LocationIDs)
	c.OrganizationIDs = slices.Clone(f.OrganizationIDs)
	c.MimeTypes = slices.Clone(f.MimeTypes)
	c.Tags = slices.Clone(f.Tags)
	return &c
}

// Clone returns a deep copy of the request, or nil for a nil request.
func (r *SubmitTrainingJobRequest) Clone() *SubmitTrainingJobRequest {
	if r == nil {
		return nil
	}
	c := *r
	c.Tags = slices.Clone(r.Tags)
	c.Filter = r.Filter.Clone()
	return &c
}

// Clone returns a deep copy of the metadata, or nil for nil metadata.
func (m *TrainingJobMetadata) Clone() *TrainingJobMetadata {
	if m == nil {
		return nil
	}
	c := *m
	c.Request = m.Request.Clone()
	return &c
}
