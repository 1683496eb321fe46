package models

// StaticQuestion là câu hỏi trong bộ đề tĩnh dự phòng. Khi database lỗi
// hoặc chưa có dữ liệu, hệ thống chấm điểm và trả đề từ bộ này.
type StaticQuestion struct {
	ID              uint         `json:"id"`
	Anchor          string       `json:"anchor"`
	Question        string       `json:"question"`
	Options         []QuizOption `json:"options,omitempty"`
	Answer          string       `json:"answer,omitempty"`
	KnowledgePoint  string       `json:"knowledge_point"`
	Explanation     string       `json:"explanation"`
	ReferenceAnswer string       `json:"reference_answer,omitempty"`
}

func StaticObjectiveQuestions() []StaticQuestion {
	return []StaticQuestion{
		{
			ID:       1,
			Anchor:   "obj1",
			Question: "Từ khoá nào dùng để định nghĩa hàm trong Python?",
			Options: []QuizOption{
				{Label: "A", Text: "def"},
				{Label: "B", Text: "function"},
				{Label: "C", Text: "func"},
				{Label: "D", Text: "define"},
			},
			Answer:         "A",
			KnowledgePoint: "Cú pháp cơ bản Python",
			Explanation:    "Python dùng từ khoá def (viết tắt của definition) để định nghĩa hàm; function/func/define không phải từ khoá của Python.",
		},
		{
			ID:       2,
			Anchor:   "obj2",
			Question: "Kiểu dữ liệu nào sau đây không phải kiểu built-in của Python?",
			Options: []QuizOption{
				{Label: "A", Text: "list"},
				{Label: "B", Text: "dict"},
				{Label: "C", Text: "array"},
				{Label: "D", Text: "tuple"},
			},
			Answer:         "C",
			KnowledgePoint: "Kiểu dữ liệu Python",
			Explanation:    "list, dict, tuple là kiểu built-in; array thuộc thư viện numpy, không phải kiểu có sẵn.",
		},
		{
			ID:       3,
			Anchor:   "obj3",
			Question: "Phương thức nào dùng để đọc nội dung file trong Python?",
			Options: []QuizOption{
				{Label: "A", Text: "open()"},
				{Label: "B", Text: "read()"},
				{Label: "C", Text: "write()"},
				{Label: "D", Text: "close()"},
			},
			Answer:         "B",
			KnowledgePoint: "Thao tác file Python",
			Explanation:    "open() mở file, read() đọc nội dung, write() ghi, close() đóng file.",
		},
		{
			ID:       4,
			Anchor:   "obj4",
			Question: "Từ khoá nào dùng để xử lý ngoại lệ trong Python?",
			Options: []QuizOption{
				{Label: "A", Text: "try"},
				{Label: "B", Text: "catch"},
				{Label: "C", Text: "exception"},
				{Label: "D", Text: "error"},
			},
			Answer:         "A",
			KnowledgePoint: "Xử lý ngoại lệ Python",
			Explanation:    "Python dùng cấu trúc try-except-finally; catch là từ khoá của ngôn ngữ khác.",
		},
		{
			ID:       5,
			Anchor:   "obj5",
			Question: "Cách nào tạo một list rỗng trong Python?",
			Options: []QuizOption{
				{Label: "A", Text: "[]"},
				{Label: "B", Text: "list()"},
				{Label: "C", Text: "{}"},
				{Label: "D", Text: "()"},
			},
			Answer:         "A",
			KnowledgePoint: "List trong Python",
			Explanation:    "[] là cách ngắn nhất tạo list rỗng; list() cũng được nhưng [] thông dụng hơn.",
		},
	}
}

func StaticSubjectiveQuestions() []StaticQuestion {
	return []StaticQuestion{
		{
			ID:              101,
			Anchor:          "sub1",
			Question:        "Trình bày sự khác nhau giữa list và tuple trong Python",
			ReferenceAnswer: "List là dãy có thể thay đổi (thêm, xoá, sửa phần tử), khai báo bằng []; tuple là dãy bất biến, khai báo bằng (). List phù hợp với dữ liệu cần chỉnh sửa, tuple phù hợp với dữ liệu cố định.",
			KnowledgePoint:  "Kiểu dãy trong Python",
			Explanation:     "1. Tính khả biến: list mutable, tuple immutable; 2. Cú pháp: list dùng [], tuple dùng (); 3. Hiệu năng: tuple duyệt/truy cập nhanh hơn một chút; 4. Công dụng: list cho dữ liệu động, tuple cho dữ liệu cố định (ví dụ cấu hình).",
		},
		{
			ID:              102,
			Anchor:          "sub2",
			Question:        "Giải thích decorator trong Python là gì",
			ReferenceAnswer: "Decorator là một hàm dùng để thay đổi hành vi của hàm khác, bổ sung chức năng mà không sửa code gốc. Nó nhận hàm làm tham số và trả về hàm mới.",
			KnowledgePoint:  "Đặc tính nâng cao Python",
			Explanation:     "Decorator là đặc tính nâng cao của Python, bản chất là hàm nhận hàm làm tham số và trả về hàm mới. Hay dùng cho logging, đo hiệu năng, transaction, cache.",
		},
		{
			ID:              103,
			Anchor:          "sub3",
			Question:        "Generator trong Python là gì?",
			ReferenceAnswer: "Generator là một loại iterator đặc biệt, dùng từ khoá yield để trả giá trị, sinh giá trị theo nhu cầu thay vì sinh hết một lần, giúp tiết kiệm bộ nhớ.",
			KnowledgePoint:  "Iterator và generator Python",
			Explanation:     "Generator dùng yield, mỗi lần sinh một giá trị rồi tạm dừng, lần sau chạy tiếp từ chỗ dừng. Hàm generator trả về generator object thay vì trả toàn bộ kết quả.",
		},
	}
}
