package ast

type NodeType string

const (
	NodeProgram                 NodeType = "Program"
	NodeBlockStatement          NodeType = "BlockStatement"
	NodeEmptyStatement          NodeType = "EmptyStatement"
	NodeExpressionStatement     NodeType = "ExpressionStatement"
	NodeIfStatement             NodeType = "IfStatement"
	NodeWhileStatement          NodeType = "WhileStatement"
	NodeDoWhileStatement        NodeType = "DoWhileStatement"
	NodeForStatement            NodeType = "ForStatement"
	NodeForInStatement          NodeType = "ForInStatement"
	NodeSwitchStatement         NodeType = "SwitchStatement"
	NodeSwitchCase              NodeType = "SwitchCase"
	NodeBreakStatement          NodeType = "BreakStatement"
	NodeContinueStatement       NodeType = "ContinueStatement"
	NodeReturnStatement         NodeType = "ReturnStatement"
	NodeThrowStatement          NodeType = "ThrowStatement"
	NodeTryStatement            NodeType = "TryStatement"
	NodeCatchClause             NodeType = "CatchClause"
	NodeVariableDeclaration     NodeType = "VariableDeclaration"
	NodeVariableDeclarator      NodeType = "VariableDeclarator"
	NodeFunctionDeclaration     NodeType = "FunctionDeclaration"
	NodeExportDeclaration       NodeType = "ExportDeclaration"
	NodeLabeledStatement        NodeType = "LabeledStatement"
	NodeClass                   NodeType = "Class"
	NodeMethodDefinition        NodeType = "MethodDefinition"
	NodeFieldDefinition         NodeType = "FieldDefinition"
	NodeIdentifier              NodeType = "Identifier"
	NodeLiteral                 NodeType = "Literal"
	NodeTemplateLiteral         NodeType = "TemplateLiteral"
	NodeArrayExpression         NodeType = "ArrayExpression"
	NodeObjectExpression        NodeType = "ObjectExpression"
	NodeProperty                NodeType = "Property"
	NodeFunctionExpression      NodeType = "FunctionExpression"
	NodeArrowFunction           NodeType = "ArrowFunction"
	NodeUnaryExpression         NodeType = "UnaryExpression"
	NodeUpdateExpression        NodeType = "UpdateExpression"
	NodeBinaryExpression        NodeType = "BinaryExpression"
	NodeLogicalExpression       NodeType = "LogicalExpression"
	NodeAssignmentExpression    NodeType = "AssignmentExpression"
	NodeConditionalExpression   NodeType = "ConditionalExpression"
	NodeCallExpression          NodeType = "CallExpression"
	NodeNewExpression           NodeType = "NewExpression"
	NodeMemberExpression        NodeType = "MemberExpression"
	NodeSequenceExpression      NodeType = "SequenceExpression"
	NodeParenthesizedExpression NodeType = "ParenthesizedExpression"
	NodeSpreadElement           NodeType = "SpreadElement"
	NodeYieldExpression         NodeType = "YieldExpression"
	NodeAwaitExpression         NodeType = "AwaitExpression"
	NodeRaw                     NodeType = "Raw"
)

// Category groups node types by how the evaluator treats them.
type Category int

const (
	CategoryLeaf Category = iota
	CategoryPassthrough
	CategoryStatementList
	CategoryOperator
	CategoryControl
	CategoryIdentifier
	CategoryCall
	CategoryMember
	CategoryMutation
	CategoryDeclaration
)

func (c Category) String() string {
	switch c {
	case CategoryLeaf:
		return "leaf"
	case CategoryPassthrough:
		return "passthrough"
	case CategoryStatementList:
		return "statement-list"
	case CategoryOperator:
		return "operator"
	case CategoryControl:
		return "control"
	case CategoryIdentifier:
		return "identifier"
	case CategoryCall:
		return "call"
	case CategoryMember:
		return "member"
	case CategoryMutation:
		return "mutation"
	case CategoryDeclaration:
		return "declaration"
	default:
		return "unknown"
	}
}

var nodeCategories = map[NodeType]Category{
	NodeProgram:                 CategoryStatementList,
	NodeBlockStatement:          CategoryStatementList,
	NodeSwitchCase:              CategoryStatementList,
	NodeTryStatement:            CategoryStatementList,
	NodeCatchClause:             CategoryStatementList,
	NodeClass:                   CategoryStatementList,
	NodeEmptyStatement:          CategoryLeaf,
	NodeBreakStatement:          CategoryLeaf,
	NodeContinueStatement:       CategoryLeaf,
	NodeLiteral:                 CategoryLeaf,
	NodeRaw:                     CategoryLeaf,
	NodeExpressionStatement:     CategoryPassthrough,
	NodeReturnStatement:         CategoryPassthrough,
	NodeThrowStatement:          CategoryPassthrough,
	NodeExportDeclaration:       CategoryPassthrough,
	NodeLabeledStatement:        CategoryPassthrough,
	NodeTemplateLiteral:         CategoryPassthrough,
	NodeSequenceExpression:      CategoryPassthrough,
	NodeParenthesizedExpression: CategoryPassthrough,
	NodeSpreadElement:           CategoryPassthrough,
	NodeYieldExpression:         CategoryPassthrough,
	NodeAwaitExpression:         CategoryPassthrough,
	NodeIfStatement:             CategoryControl,
	NodeConditionalExpression:   CategoryControl,
	NodeWhileStatement:          CategoryControl,
	NodeDoWhileStatement:        CategoryControl,
	NodeForStatement:            CategoryControl,
	NodeForInStatement:          CategoryControl,
	NodeSwitchStatement:         CategoryControl,
	NodeUnaryExpression:         CategoryOperator,
	NodeBinaryExpression:        CategoryOperator,
	NodeLogicalExpression:       CategoryOperator,
	NodeIdentifier:              CategoryIdentifier,
	NodeCallExpression:          CategoryCall,
	NodeNewExpression:           CategoryCall,
	NodeMemberExpression:        CategoryMember,
	NodeAssignmentExpression:    CategoryMutation,
	NodeUpdateExpression:        CategoryMutation,
	NodeVariableDeclaration:     CategoryDeclaration,
	NodeVariableDeclarator:      CategoryDeclaration,
	NodeFunctionDeclaration:     CategoryDeclaration,
	NodeFunctionExpression:      CategoryDeclaration,
	NodeArrowFunction:           CategoryDeclaration,
	NodeArrayExpression:         CategoryDeclaration,
	NodeObjectExpression:        CategoryDeclaration,
	NodeProperty:                CategoryDeclaration,
	NodeMethodDefinition:        CategoryDeclaration,
	NodeFieldDefinition:         CategoryDeclaration,
}

type Node interface {
	NodeType() NodeType
	Category() Category
	Span() Span
	Origin() *Origin
	isNode()
}

type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}

type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type nodeImpl struct {
	Type   NodeType `json:"type"`
	span   Span
	origin *Origin
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType        { return n.Type }
func (n nodeImpl) Category() Category        { return nodeCategories[n.Type] }
func (n nodeImpl) Span() Span                { return n.span }
func (n nodeImpl) Origin() *Origin           { return n.origin }
func (nodeImpl) isNode()                     {}
func (n *nodeImpl) setSpan(span Span)        { n.span = span }
func (n *nodeImpl) setOrigin(origin *Origin) { n.origin = origin }

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Program and statements

type Program struct {
	nodeImpl

	Body []Statement `json:"body"`
}

func NewProgram(body []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Body: body}
}

// BlockStatement is a braced statement list. Inline blocks are groups
// produced by expansion; they always splice into the enclosing list and may
// stand in expression position.
type BlockStatement struct {
	nodeImpl
	statementMarker
	expressionMarker

	Body   []Statement `json:"body"`
	Inline bool        `json:"inline,omitempty"`
}

func NewBlockStatement(body []Statement) *BlockStatement {
	return &BlockStatement{nodeImpl: newNodeImpl(NodeBlockStatement), Body: body}
}

func NewInlineBlock(body []Statement) *BlockStatement {
	return &BlockStatement{nodeImpl: newNodeImpl(NodeBlockStatement), Body: body, Inline: true}
}

type EmptyStatement struct {
	nodeImpl
	statementMarker
}

func NewEmptyStatement() *EmptyStatement {
	return &EmptyStatement{nodeImpl: newNodeImpl(NodeEmptyStatement)}
}

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expr}
}

type IfStatement struct {
	nodeImpl
	statementMarker

	Test       Expression `json:"test"`
	Consequent Statement  `json:"consequent"`
	Alternate  Statement  `json:"alternate,omitempty"`
}

func NewIfStatement(test Expression, consequent, alternate Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Test: test, Consequent: consequent, Alternate: alternate}
}

type WhileStatement struct {
	nodeImpl
	statementMarker

	Test Expression `json:"test"`
	Body Statement  `json:"body"`
}

func NewWhileStatement(test Expression, body Statement) *WhileStatement {
	return &WhileStatement{nodeImpl: newNodeImpl(NodeWhileStatement), Test: test, Body: body}
}

type DoWhileStatement struct {
	nodeImpl
	statementMarker

	Body Statement  `json:"body"`
	Test Expression `json:"test"`
}

func NewDoWhileStatement(body Statement, test Expression) *DoWhileStatement {
	return &DoWhileStatement{nodeImpl: newNodeImpl(NodeDoWhileStatement), Body: body, Test: test}
}

// ForStatement is the three-clause loop. Init is a *VariableDeclaration, an
// Expression, or nil.
type ForStatement struct {
	nodeImpl
	statementMarker

	Init   Node       `json:"init,omitempty"`
	Test   Expression `json:"test,omitempty"`
	Update Expression `json:"update,omitempty"`
	Body   Statement  `json:"body"`
}

func NewForStatement(init Node, test, update Expression, body Statement) *ForStatement {
	return &ForStatement{nodeImpl: newNodeImpl(NodeForStatement), Init: init, Test: test, Update: update, Body: body}
}

// ForInStatement covers both for-in and for-of. Kind is the declaration
// keyword of the loop binding, empty when the left side is a plain target.
type ForInStatement struct {
	nodeImpl
	statementMarker

	Kind  string     `json:"kind,omitempty"`
	Left  Node       `json:"left"`
	Right Expression `json:"right"`
	Body  Statement  `json:"body"`
	Of    bool       `json:"of,omitempty"`
	Await bool       `json:"await,omitempty"`
}

func NewForInStatement(kind string, left Node, right Expression, body Statement, of bool) *ForInStatement {
	return &ForInStatement{nodeImpl: newNodeImpl(NodeForInStatement), Kind: kind, Left: left, Right: right, Body: body, Of: of}
}

type SwitchStatement struct {
	nodeImpl
	statementMarker

	Discriminant Expression    `json:"discriminant"`
	Cases        []*SwitchCase `json:"cases"`
}

func NewSwitchStatement(discriminant Expression, cases []*SwitchCase) *SwitchStatement {
	return &SwitchStatement{nodeImpl: newNodeImpl(NodeSwitchStatement), Discriminant: discriminant, Cases: cases}
}

// SwitchCase is a case clause; a nil Test marks the default clause.
type SwitchCase struct {
	nodeImpl

	Test       Expression  `json:"test,omitempty"`
	Consequent []Statement `json:"consequent"`
}

func NewSwitchCase(test Expression, consequent []Statement) *SwitchCase {
	return &SwitchCase{nodeImpl: newNodeImpl(NodeSwitchCase), Test: test, Consequent: consequent}
}

type BreakStatement struct {
	nodeImpl
	statementMarker

	Label *Identifier `json:"label,omitempty"`
}

func NewBreakStatement(label *Identifier) *BreakStatement {
	return &BreakStatement{nodeImpl: newNodeImpl(NodeBreakStatement), Label: label}
}

type ContinueStatement struct {
	nodeImpl
	statementMarker

	Label *Identifier `json:"label,omitempty"`
}

func NewContinueStatement(label *Identifier) *ContinueStatement {
	return &ContinueStatement{nodeImpl: newNodeImpl(NodeContinueStatement), Label: label}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument,omitempty"`
}

func NewReturnStatement(argument Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Argument: argument}
}

type ThrowStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument"`
}

func NewThrowStatement(argument Expression) *ThrowStatement {
	return &ThrowStatement{nodeImpl: newNodeImpl(NodeThrowStatement), Argument: argument}
}

type TryStatement struct {
	nodeImpl
	statementMarker

	Block     *BlockStatement `json:"block"`
	Handler   *CatchClause    `json:"handler,omitempty"`
	Finalizer *BlockStatement `json:"finalizer,omitempty"`
}

func NewTryStatement(block *BlockStatement, handler *CatchClause, finalizer *BlockStatement) *TryStatement {
	return &TryStatement{nodeImpl: newNodeImpl(NodeTryStatement), Block: block, Handler: handler, Finalizer: finalizer}
}

type CatchClause struct {
	nodeImpl

	Param Node            `json:"param,omitempty"`
	Body  *BlockStatement `json:"body"`
}

func NewCatchClause(param Node, body *BlockStatement) *CatchClause {
	return &CatchClause{nodeImpl: newNodeImpl(NodeCatchClause), Param: param, Body: body}
}

type VariableDeclaration struct {
	nodeImpl
	statementMarker

	Kind         string                `json:"kind"`
	Declarations []*VariableDeclarator `json:"declarations"`
}

func NewVariableDeclaration(kind string, declarations []*VariableDeclarator) *VariableDeclaration {
	return &VariableDeclaration{nodeImpl: newNodeImpl(NodeVariableDeclaration), Kind: kind, Declarations: declarations}
}

// VariableDeclarator binds ID (an *Identifier or a *Raw destructuring
// pattern) to an optional initializer.
type VariableDeclarator struct {
	nodeImpl

	ID   Node       `json:"id"`
	Init Expression `json:"init,omitempty"`
}

func NewVariableDeclarator(id Node, init Expression) *VariableDeclarator {
	return &VariableDeclarator{nodeImpl: newNodeImpl(NodeVariableDeclarator), ID: id, Init: init}
}

type FunctionDeclaration struct {
	nodeImpl
	statementMarker

	Name      *Identifier     `json:"name"`
	Params    []Node          `json:"params"`
	Body      *BlockStatement `json:"body"`
	Async     bool            `json:"async,omitempty"`
	Generator bool            `json:"generator,omitempty"`
}

func NewFunctionDeclaration(name *Identifier, params []Node, body *BlockStatement) *FunctionDeclaration {
	return &FunctionDeclaration{nodeImpl: newNodeImpl(NodeFunctionDeclaration), Name: name, Params: params, Body: body}
}

// ExportDeclaration wraps `export <declaration>`. Other export forms are
// kept as Raw nodes by the parser.
type ExportDeclaration struct {
	nodeImpl
	statementMarker

	Declaration Statement `json:"declaration"`
}

func NewExportDeclaration(decl Statement) *ExportDeclaration {
	return &ExportDeclaration{nodeImpl: newNodeImpl(NodeExportDeclaration), Declaration: decl}
}

type LabeledStatement struct {
	nodeImpl
	statementMarker

	Label *Identifier `json:"label"`
	Body  Statement   `json:"body"`
}

func NewLabeledStatement(label *Identifier, body Statement) *LabeledStatement {
	return &LabeledStatement{nodeImpl: newNodeImpl(NodeLabeledStatement), Label: label, Body: body}
}

// Class is a class declaration, or a class expression when Declaration is
// false. Body members are *MethodDefinition, *FieldDefinition or *Raw
// (static blocks).
type Class struct {
	nodeImpl
	statementMarker
	expressionMarker

	Name        *Identifier `json:"name,omitempty"`
	SuperClass  Expression  `json:"superClass,omitempty"`
	Body        []Node      `json:"body"`
	Declaration bool        `json:"declaration,omitempty"`
}

func NewClass(name *Identifier, superClass Expression, body []Node) *Class {
	return &Class{nodeImpl: newNodeImpl(NodeClass), Name: name, SuperClass: superClass, Body: body}
}

// MethodDefinition is a class method. Kind is "method", "get", "set" or
// "constructor".
type MethodDefinition struct {
	nodeImpl

	Key      Expression          `json:"key"`
	Value    *FunctionExpression `json:"value"`
	Kind     string              `json:"kind"`
	Static   bool                `json:"static,omitempty"`
	Computed bool                `json:"computed,omitempty"`
}

func NewMethodDefinition(key Expression, value *FunctionExpression, kind string) *MethodDefinition {
	return &MethodDefinition{nodeImpl: newNodeImpl(NodeMethodDefinition), Key: key, Value: value, Kind: kind}
}

type FieldDefinition struct {
	nodeImpl

	Key      Expression `json:"key"`
	Value    Expression `json:"value,omitempty"`
	Static   bool       `json:"static,omitempty"`
	Computed bool       `json:"computed,omitempty"`
}

func NewFieldDefinition(key, value Expression) *FieldDefinition {
	return &FieldDefinition{nodeImpl: newNodeImpl(NodeFieldDefinition), Key: key, Value: value}
}

// Expressions

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// Literal holds a primitive: nil (null), bool, float64 or string. Raw keeps
// the source spelling when the literal came from the parser.
type Literal struct {
	nodeImpl
	expressionMarker

	Value any    `json:"value"`
	Raw   string `json:"raw,omitempty"`
}

func NewLiteral(value any) *Literal {
	return &Literal{nodeImpl: newNodeImpl(NodeLiteral), Value: value}
}

// TemplateLiteral keeps the cooked text of each quasi; len(Quasis) is always
// len(Expressions)+1.
type TemplateLiteral struct {
	nodeImpl
	expressionMarker

	Quasis      []string     `json:"quasis"`
	Expressions []Expression `json:"expressions"`
}

func NewTemplateLiteral(quasis []string, expressions []Expression) *TemplateLiteral {
	return &TemplateLiteral{nodeImpl: newNodeImpl(NodeTemplateLiteral), Quasis: quasis, Expressions: expressions}
}

// ArrayExpression elements may be nil for holes.
type ArrayExpression struct {
	nodeImpl
	expressionMarker

	Elements []Expression `json:"elements"`
}

func NewArrayExpression(elements []Expression) *ArrayExpression {
	return &ArrayExpression{nodeImpl: newNodeImpl(NodeArrayExpression), Elements: elements}
}

// ObjectExpression properties are *Property, *SpreadElement or *Raw (methods,
// accessors).
type ObjectExpression struct {
	nodeImpl
	expressionMarker

	Properties []Node `json:"properties"`
}

func NewObjectExpression(properties []Node) *ObjectExpression {
	return &ObjectExpression{nodeImpl: newNodeImpl(NodeObjectExpression), Properties: properties}
}

type Property struct {
	nodeImpl

	Key       Expression `json:"key"`
	Value     Expression `json:"value"`
	Computed  bool       `json:"computed,omitempty"`
	Shorthand bool       `json:"shorthand,omitempty"`
}

func NewProperty(key, value Expression, computed bool) *Property {
	return &Property{nodeImpl: newNodeImpl(NodeProperty), Key: key, Value: value, Computed: computed}
}

type FunctionExpression struct {
	nodeImpl
	expressionMarker

	Name      *Identifier     `json:"name,omitempty"`
	Params    []Node          `json:"params"`
	Body      *BlockStatement `json:"body"`
	Async     bool            `json:"async,omitempty"`
	Generator bool            `json:"generator,omitempty"`
}

func NewFunctionExpression(name *Identifier, params []Node, body *BlockStatement) *FunctionExpression {
	return &FunctionExpression{nodeImpl: newNodeImpl(NodeFunctionExpression), Name: name, Params: params, Body: body}
}

// ArrowFunction body is a *BlockStatement or an Expression.
type ArrowFunction struct {
	nodeImpl
	expressionMarker

	Params []Node `json:"params"`
	Body   Node   `json:"body"`
	Async  bool   `json:"async,omitempty"`
	// BareParam records `a => ...` without parentheses.
	BareParam bool `json:"bareParam,omitempty"`
}

func NewArrowFunction(params []Node, body Node) *ArrowFunction {
	return &ArrowFunction{nodeImpl: newNodeImpl(NodeArrowFunction), Params: params, Body: body}
}

type UnaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Argument Expression `json:"argument"`
}

func NewUnaryExpression(operator string, argument Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Argument: argument}
}

// Category reports delete as a mutation.
func (n *UnaryExpression) Category() Category {
	if n.Operator == "delete" {
		return CategoryMutation
	}
	return CategoryOperator
}

type UpdateExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Prefix   bool       `json:"prefix"`
	Argument Expression `json:"argument"`
}

func NewUpdateExpression(operator string, prefix bool, argument Expression) *UpdateExpression {
	return &UpdateExpression{nodeImpl: newNodeImpl(NodeUpdateExpression), Operator: operator, Prefix: prefix, Argument: argument}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

type LogicalExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewLogicalExpression(operator string, left, right Expression) *LogicalExpression {
	return &LogicalExpression{nodeImpl: newNodeImpl(NodeLogicalExpression), Operator: operator, Left: left, Right: right}
}

type AssignmentExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewAssignmentExpression(operator string, left, right Expression) *AssignmentExpression {
	return &AssignmentExpression{nodeImpl: newNodeImpl(NodeAssignmentExpression), Operator: operator, Left: left, Right: right}
}

type ConditionalExpression struct {
	nodeImpl
	expressionMarker

	Test       Expression `json:"test"`
	Consequent Expression `json:"consequent"`
	Alternate  Expression `json:"alternate"`
}

func NewConditionalExpression(test, consequent, alternate Expression) *ConditionalExpression {
	return &ConditionalExpression{nodeImpl: newNodeImpl(NodeConditionalExpression), Test: test, Consequent: consequent, Alternate: alternate}
}

type CallExpression struct {
	nodeImpl
	expressionMarker

	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
	Optional  bool         `json:"optional,omitempty"`
}

func NewCallExpression(callee Expression, arguments []Expression) *CallExpression {
	return &CallExpression{nodeImpl: newNodeImpl(NodeCallExpression), Callee: callee, Arguments: arguments}
}

type NewExpression struct {
	nodeImpl
	expressionMarker

	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewNewExpression(callee Expression, arguments []Expression) *NewExpression {
	return &NewExpression{nodeImpl: newNodeImpl(NodeNewExpression), Callee: callee, Arguments: arguments}
}

// MemberExpression is `object.property` or, when Computed, `object[property]`.
// A non-computed Property is always an *Identifier.
type MemberExpression struct {
	nodeImpl
	expressionMarker

	Object   Expression `json:"object"`
	Property Expression `json:"property"`
	Computed bool       `json:"computed,omitempty"`
	Optional bool       `json:"optional,omitempty"`
}

func NewMemberExpression(object, property Expression, computed bool) *MemberExpression {
	return &MemberExpression{nodeImpl: newNodeImpl(NodeMemberExpression), Object: object, Property: property, Computed: computed}
}

type SequenceExpression struct {
	nodeImpl
	expressionMarker

	Expressions []Expression `json:"expressions"`
}

func NewSequenceExpression(expressions []Expression) *SequenceExpression {
	return &SequenceExpression{nodeImpl: newNodeImpl(NodeSequenceExpression), Expressions: expressions}
}

type ParenthesizedExpression struct {
	nodeImpl
	expressionMarker

	Expression Expression `json:"expression"`
}

func NewParenthesizedExpression(expr Expression) *ParenthesizedExpression {
	return &ParenthesizedExpression{nodeImpl: newNodeImpl(NodeParenthesizedExpression), Expression: expr}
}

type SpreadElement struct {
	nodeImpl
	expressionMarker

	Argument Expression `json:"argument"`
}

func NewSpreadElement(argument Expression) *SpreadElement {
	return &SpreadElement{nodeImpl: newNodeImpl(NodeSpreadElement), Argument: argument}
}

type YieldExpression struct {
	nodeImpl
	expressionMarker

	Argument Expression `json:"argument,omitempty"`
	Delegate bool       `json:"delegate,omitempty"`
}

func NewYieldExpression(argument Expression, delegate bool) *YieldExpression {
	return &YieldExpression{nodeImpl: newNodeImpl(NodeYieldExpression), Argument: argument, Delegate: delegate}
}

type AwaitExpression struct {
	nodeImpl
	expressionMarker

	Argument Expression `json:"argument"`
}

func NewAwaitExpression(argument Expression) *AwaitExpression {
	return &AwaitExpression{nodeImpl: newNodeImpl(NodeAwaitExpression), Argument: argument}
}

// Raw is syntax the evaluator never looks inside: imports, regular
// expressions, class static blocks, destructuring patterns and anything the parser does
// not model. Kind is the grammar node kind it came from.
type Raw struct {
	nodeImpl
	statementMarker
	expressionMarker

	Kind string `json:"kind"`
	Text string `json:"text"`
	// Unrecognized marks syntax the parser had no model for, as opposed to
	// constructs that are opaque on purpose.
	Unrecognized bool `json:"unrecognized,omitempty"`
	// Bindings lists the names a destructuring pattern declares.
	Bindings []string `json:"bindings,omitempty"`
}

func NewRaw(kind, text string) *Raw {
	return &Raw{nodeImpl: newNodeImpl(NodeRaw), Kind: kind, Text: text}
}
